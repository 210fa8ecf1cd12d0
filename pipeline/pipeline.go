// Package pipeline turns raw message bodies into what is stored and what is displayed.
package pipeline

import (
	"fmt"
	"log/slog"
)

// Censor masks forbidden words. *moderation.Moderator satisfies it.
type Censor interface {
	Censor(text string) (string, []string)
}

// Pipeline applies, in order, censoring (optional), sanitizing and encryption.
type Pipeline struct {
	log    *slog.Logger
	cipher *Cipher
	censor Censor
}

// New builds a pipeline. censor may be nil when moderation is disabled.
func New(log *slog.Logger, cipher *Cipher, censor Censor) *Pipeline {
	return &Pipeline{log: log, cipher: cipher, censor: censor}
}

// Prepared is a message body ready to be persisted and displayed.
type Prepared struct {
	Display string // safe to render
	Stored  string // ciphertext of Display
}

// Prepare runs body through the pipeline once.
func (p *Pipeline) Prepare(body string) (Prepared, error) {
	if p.censor != nil {
		var words []string
		body, words = p.censor.Censor(body)
		if len(words) > 0 {
			p.log.Debug("Forbidden words masked", "count", len(words))
		}
	}
	display := Sanitize(body)
	stored, err := p.cipher.Encrypt(display)
	if err != nil {
		return Prepared{}, fmt.Errorf("encrypt body: %w", err)
	}
	return Prepared{Display: display, Stored: stored}, nil
}

func (p *Pipeline) Sanitize(text string) string {
	return Sanitize(text)
}

func (p *Pipeline) Encrypt(plaintext string) (string, error) {
	return p.cipher.Encrypt(plaintext)
}

func (p *Pipeline) Decrypt(value string) string {
	return p.cipher.Decrypt(value)
}

// Reveal returns the displayable text of a stored body.
func (p *Pipeline) Reveal(stored string) string {
	return p.cipher.Decrypt(stored)
}
