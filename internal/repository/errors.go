package repository

import "errors"

var (
	// ErrNotFound запись не найдена или принадлежит другому пользователю
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyBooked на это время у преподавателя уже есть запись студента
	ErrAlreadyBooked = errors.New("slot already booked")
)
