package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"github.com/Freeeeeet/tutor_scheduler/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRegisterUserCreatesAndUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewUserService(memory.NewStore(clock), zaptest.NewLogger(t))

	user, err := s.RegisterUser(ctx, 100, "anna", "Anna", "", "ru")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, user.Role)

	_, err = s.BecomeTutor(ctx, 100)
	require.NoError(t, err)

	again, err := s.RegisterUser(ctx, 100, "anna_k", "Anna", "K", "ru")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "anna_k", again.Username)
	assert.Equal(t, model.RoleTutor, again.Role)
}

func TestBecomeTutor(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(clock)
	s := NewUserService(store, zaptest.NewLogger(t))

	_, err := s.BecomeTutor(ctx, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	admin := &model.User{TelegramID: 2, FirstName: "Root", Role: model.RoleAdmin}
	require.NoError(t, store.Create(ctx, admin))
	got, err := s.BecomeTutor(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)

	_, err = s.RegisterUser(ctx, 3, "", "Boris", "", "")
	require.NoError(t, err)
	_, err = s.RegisterUser(ctx, 4, "", "Alla", "", "")
	require.NoError(t, err)
	for _, id := range []int64{3, 4} {
		_, err = s.BecomeTutor(ctx, id)
		require.NoError(t, err)
	}

	tutors, err := s.ListTutors(ctx)
	require.NoError(t, err)
	require.Len(t, tutors, 2)
	assert.Equal(t, "Alla", tutors[0].FirstName)
	assert.True(t, tutors[1].IsTutor())
}
