package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type RegisterForm struct {
	Username  string `form:"username" json:"username" binding:"required,notblank,max=20,username"`
	Password  string `form:"password" json:"-" binding:"required,max=100"`
	Email     string `form:"email" json:"email" binding:"required,email,max=50"`
	FirstName string `form:"first_name" json:"first_name" binding:"required,notblank,max=30"`
	LastName  string `form:"last_name" json:"last_name" binding:"required,notblank,max=30"`
}

type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required,max=20"`
	Password string `form:"password" json:"-" binding:"required,max=100"`
}

type NoteForm struct {
	Title   string `form:"title" json:"title" binding:"required,notblank,max=100"`
	Content string `form:"content" json:"content" binding:"required"`
}

// FieldErrors maps a form field name to the message shown next to it. The
// "form" key holds errors that belong to no single field.
type FieldErrors map[string]string

type formView struct {
	Values interface{} `json:"values"`
	Errors FieldErrors `json:"errors"`
}

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	if err := v.RegisterValidation("username", validUsername); err != nil {
		panic(fmt.Sprintf("register username validation: %v", err))
	}
}

// Usernames end up as a path segment of /users/{username}.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.@+-]+$`)

func validUsername(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "." || name == ".." {
		return false
	}
	return usernamePattern.MatchString(name)
}

// bindForm decodes and validates a submitted form. It returns nil when the
// form is acceptable.
func bindForm(c *gin.Context, form interface{}) FieldErrors {
	err := c.ShouldBind(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": "The submitted form could not be read."}
	}

	errs := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = fieldMessage(fe)
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "email":
		return "Invalid email address."
	case "username":
		return "Use only letters, digits and @ . + - _ characters."
	default:
		return "Invalid value."
	}
}
