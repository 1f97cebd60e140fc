package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/txledger/internal/core/domain"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the ledger's custom binding tags to gin's validator engine.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
				return domain.IsCurrencyCode(fl.Field().String())
			})
		}
	})
}
