package api

import (
	"github.com/JaimeStill/slide-lab/internal/assistant"
	"github.com/JaimeStill/slide-lab/internal/presentations"
	"github.com/JaimeStill/slide-lab/internal/slides"
	"github.com/JaimeStill/slide-lab/internal/templates"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Presentations presentations.System
	Slides        slides.System
	Assistant     assistant.System
	Templates     templates.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	presentationsSys := presentations.New(
		runtime.Gateway,
		runtime.Generator,
		runtime.Locks,
		runtime.Concurrency,
		runtime.ShareURL,
		runtime.Logger,
	)

	slidesSys := slides.New(
		runtime.Gateway,
		runtime.Locks,
		runtime.Logger,
	)

	assistantSys := assistant.New(
		runtime.Gateway,
		runtime.Generator,
		presentationsSys,
		runtime.Logger,
	)

	templatesSys := templates.New(
		runtime.Templates,
		runtime.Gateway,
		runtime.Locks,
		runtime.Logger,
	)

	return &Domain{
		Presentations: presentationsSys,
		Slides:        slidesSys,
		Assistant:     assistantSys,
		Templates:     templatesSys,
	}
}
