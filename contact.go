package main

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/bonhomie95/portfolio/internal/mailer"
	"github.com/bonhomie95/portfolio/internal/store"
)

var (
	errMissingField = errors.New("please fill in your name, a way to reach you, and a project summary")
	errInvalidEmail = errors.New("please enter a valid email address or phone number")
	errTooLong      = errors.New("your message is too long")
)

// Phone numbers are typed the way people write them ("+234 801 234 5678",
// "(555) 010-0199"), so separators are allowed; e164 would reject both.
var phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-.]{7,20}$`)

const minPhoneDigits = 7

type contactForm struct {
	Name    string `binding:"required,max=200"`
	Contact string `binding:"required,max=200"`
	Summary string `binding:"required,max=5000"`
}

func (f contactForm) validate() error {
	if err := binding.Validator.ValidateStruct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return errMissingField
			}
		}
		return errTooLong
	}
	if strings.Contains(f.Contact, "@") {
		if _, err := mail.ParseAddress(f.Contact); err != nil {
			return errInvalidEmail
		}
		return nil
	}
	if !phonePattern.MatchString(f.Contact) || countDigits(f.Contact) < minPhoneDigits {
		return errInvalidEmail
	}
	return nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// handleContact stores the message before emailing it so nothing is lost when
// the relay is down. Fragments are returned with 200 so HTMX swaps them in.
func (s *server) handleContact(c *gin.Context) {
	form := contactForm{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Contact: strings.TrimSpace(c.PostForm("contact")),
		Summary: strings.TrimSpace(c.PostForm("summary")),
	}
	if err := form.validate(); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	msg := store.Message{
		ID:      uuid.NewString(),
		Name:    form.Name,
		Contact: form.Contact,
		Summary: form.Summary,
	}
	if err := s.store.SaveMessage(ctx, msg); err != nil {
		logger.Error().Err(err).Msg("saving contact message")
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	err := s.sender.Send(ctx, mailer.Message{Name: form.Name, Contact: form.Contact, Summary: form.Summary})
	if err != nil {
		logger.Error().Err(err).Str("message_id", msg.ID).Msg("emailing contact message")
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	if err := s.store.MarkDelivered(ctx, msg.ID); err != nil {
		logger.Warn().Err(err).Str("message_id", msg.ID).Msg("marking message delivered")
	}

	logger.Info().Str("message_id", msg.ID).Msg("contact message delivered")
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
