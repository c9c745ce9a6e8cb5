package handler

import "github.com/go-playground/validator/v10"

// validate checks incoming request payloads against their struct tags.
var validate = validator.New(validator.WithRequiredStructEnabled())
