package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("not the owner of this survey")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidQuestion   = errors.New("invalid question")
	ErrInvalidTransition = errors.New("invalid survey status transition")
	ErrSurveyNotOpen     = errors.New("survey is not accepting responses")
	ErrUnknownQuestion   = errors.New("answer references a question not in this survey")
	ErrDuplicateAnswer   = errors.New("question answered more than once")
	ErrInvalidAnswer     = errors.New("invalid answer")
)

var validate = validator.New()
