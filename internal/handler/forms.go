package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"gamelist/backend/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// region --- Forms ---

type registerForm struct {
	Email    string `form:"email" binding:"required,email,max=100"`
	Password string `form:"password" binding:"required,max=72"`
	Name     string `form:"name" binding:"required,max=1000"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type listForm struct {
	Name        string `form:"name" binding:"required,max=250"`
	Description string `form:"description" binding:"required,max=250"`
	ImgURL      string `form:"img_url" binding:"required,url,max=250"`
}

type searchForm struct {
	Title string `form:"title" binding:"required,max=250"`
}

type editGameForm struct {
	Rating *int   `form:"rating" binding:"required,min=0,max=100"`
	Review string `form:"review" binding:"required,max=250"`
}

// endregion

var registerNamesOnce sync.Once

// registerFormFieldNames makes validation errors report the form field name
// ("img_url") instead of the struct field name ("ImgURL").
func registerFormFieldNames() {
	registerNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
}

// bindForm binds the posted form into obj. Submitted values (except passwords)
// are echoed into the returned form and validation failures are attached per field.
// A non-nil error means the body could not be decoded at all.
func bindForm(c *gin.Context, obj any) (*web.Form, error) {
	form := web.NewForm()
	err := c.ShouldBindWith(obj, binding.Form)

	for field, values := range c.Request.PostForm {
		if field == "password" || len(values) == 0 {
			continue
		}
		form.Set(field, values[0])
	}

	if err == nil {
		return form, nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			form.Fail(fe.Field(), validationMessage(fe))
		}
		return form, nil
	}
	return form, err
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	case "min":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("Must be at least %s.", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("Must be at most %s.", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	default:
		return "Invalid value."
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
