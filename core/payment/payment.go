// Package payment simulates the course checkout. No money is moved.
package payment

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/course"
)

const (
	cardNumberLen = 16

	cardNumberTag  = "cardnumber"
	cardNumberText = "{0} must contain 16 digits"
	cardExpiryTag  = "cardexpiry"
	cardExpiryText = "{0} must be a valid MM/YY date"
	cardCVCTag     = "cardcvc"
	cardCVCText    = "{0} must contain 3 or 4 digits"
)

var nowFunc = time.Now // mockable

// Card is the payment form. Number may contain spaces.
type Card struct {
	Number string `json:"number" validate:"required,cardnumber"`
	Expiry string `json:"expiry" validate:"required,cardexpiry"`
	CVC    string `json:"cvc" validate:"required,cardcvc"`
}

func (c *Card) Validate(svc *Service) error {
	c.Number = Digits(c.Number)
	c.Expiry = strings.TrimSpace(c.Expiry)
	c.CVC = strings.TrimSpace(c.CVC)
	return svc.validate.Struct(c)
}

func (c Card) Last4() string {
	n := Digits(c.Number)
	if len(n) < 4 {
		return n
	}
	return n[len(n)-4:]
}

type Receipt struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	CourseTitle string    `json:"course_title"`
	Amount      float64   `json:"amount"`
	CardLast4   string    `json:"card_last4"`
	PaidAt      time.Time `json:"paid_at"` // UTC
}

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// FormatCardNumber keeps the first 16 digits of s, grouped by 4.
func FormatCardNumber(s string) string {
	d := Digits(s)
	if len(d) > cardNumberLen {
		d = d[:cardNumberLen]
	}
	var b strings.Builder
	for i, r := range d {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(cardNumberTag, func(fl validator.FieldLevel) bool {
		n := fl.Field().String()
		return len(n) == cardNumberLen && Digits(n) == n
	})
	core.RegisterCustomTranslation(validate, translator, cardNumberTag, cardNumberText)

	_ = validate.RegisterValidation(cardExpiryTag, func(fl validator.FieldLevel) bool {
		return validExpiry(fl.Field().String(), nowFunc())
	})
	core.RegisterCustomTranslation(validate, translator, cardExpiryTag, cardExpiryText)

	_ = validate.RegisterValidation(cardCVCTag, func(fl validator.FieldLevel) bool {
		cvc := fl.Field().String()
		return (len(cvc) == 3 || len(cvc) == 4) && Digits(cvc) == cvc
	})
	core.RegisterCustomTranslation(validate, translator, cardCVCTag, cardCVCText)
}

// validExpiry accepts MM/YY dates (20YY) that are not in a month before now.
func validExpiry(exp string, now time.Time) bool {
	t, err := time.Parse("01/06", exp)
	if err != nil {
		return false
	}
	// time.Parse maps 69-99 to the 1900s
	t = time.Date(2000+t.Year()%100, t.Month(), 1, 0, 0, 0, 0, time.UTC)
	endOfMonth := t.AddDate(0, 1, 0)
	return now.UTC().Before(endOfMonth)
}

type Service struct {
	mailSvc  core.EmailService
	validate *validator.Validate
	delay    time.Duration
}

func NewService(mailSvc core.EmailService, validate *validator.Validate, conf *core.Config) *Service {
	return &Service{mailSvc: mailSvc, validate: validate, delay: conf.PaymentDelay}
}

// Checkout "charges" card for c after the configured processing delay.
// It returns ctx.Err() if ctx is done first. The receipt is emailed to to.
func (svc *Service) Checkout(ctx context.Context, card Card, c course.Course, to mail.Address) (Receipt, error) {
	if svc.delay > 0 {
		timer := time.NewTimer(svc.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Receipt{}, ctx.Err()
		case <-timer.C:
		}
	}

	rcpt := Receipt{
		ID:          uuid.New().String(),
		CourseID:    c.ID,
		CourseTitle: c.Title,
		Amount:      c.Price,
		CardLast4:   card.Last4(),
		PaidAt:      nowFunc().UTC(),
	}
	if to.Address != "" {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{to},
			Subject:      "Payment Receipt",
			TemplateName: "payment_receipt",
			TemplateData: rcpt,
		})
	}
	return rcpt, nil
}
