package course

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/thk/core"
)

const AllCategories = "All"

var (
	categories = []string{"Development", "Design", "Business", "Marketing", "Science", "Arts", "Data Science"}

	categoryTag  = "coursecategory"
	categoryText = "{0} must be one of the course categories"
)

// Categories returns the course categories, in display order.
func Categories() []string {
	return append([]string(nil), categories...)
}

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(categoryTag, func(fl validator.FieldLevel) bool {
		return core.StringsContain(categories, fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)
}
