package handlers

import (
	"github.com/geocoder89/vallas-api/internal/dates"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Custom binding rules used by the domain request DTOs:
//
//	fecha: a string in one of the accepted date layouts
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	if err := v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		_, ok := dates.Parse(fl.Field().String())
		return ok
	}); err != nil {
		panic("register fecha validator: " + err.Error())
	}
}
