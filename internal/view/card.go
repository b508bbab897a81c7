package view

import "github.com/somtogreat69/portfolio/internal/catalog"

// maxCardTools is how many tools a summary card lists before "+ more".
const maxCardTools = 3

// Span is a layout hint for a card in the gallery grid. It only changes
// the CSS class.
type Span string

const (
	SpanDefault Span = "default"
	SpanWide    Span = "wide"
)

// SpanFor returns the layout hint for the card at index in the gallery.
func SpanFor(index int) Span {
	if index == 3 {
		return SpanWide
	}
	return SpanDefault
}

// CardProps are the inputs of a summary card.
type CardProps struct {
	Study       catalog.CaseStudy
	OnViewLogic func(catalog.CaseStudy)
	Span        Span
}

// Card is the summary projection of one case study.
type Card struct {
	ID        string
	Title     string
	Role      string
	Challenge string
	Tools     []string
	MoreTools bool
	Color     catalog.Color
	Span      Span

	study       catalog.CaseStudy
	onViewLogic func(catalog.CaseStudy)
}

// NewCard projects props into a card. It has no side effects.
func NewCard(props CardProps) Card {
	s := props.Study
	n := min(len(s.Tools), maxCardTools)
	span := props.Span
	if span == "" {
		span = SpanDefault
	}
	return Card{
		ID:          s.ID,
		Title:       s.Title,
		Role:        s.Role,
		Challenge:   s.Challenge,
		Tools:       append([]string(nil), s.Tools[:n]...),
		MoreTools:   len(s.Tools) > maxCardTools,
		Color:       s.Color,
		Span:        span,
		study:       s,
		onViewLogic: props.OnViewLogic,
	}
}

// Activate requests the detail view for the card's own record.
func (c Card) Activate() {
	if c.onViewLogic != nil {
		c.onViewLogic(c.study)
	}
}

// Cards builds one card per case study, in catalog order.
func Cards(studies []catalog.CaseStudy, onViewLogic func(catalog.CaseStudy)) []Card {
	cards := make([]Card, 0, len(studies))
	for i, s := range studies {
		cards = append(cards, NewCard(CardProps{
			Study:       s,
			OnViewLogic: onViewLogic,
			Span:        SpanFor(i),
		}))
	}
	return cards
}
