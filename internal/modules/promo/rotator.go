// Package promo rotates the home page hero slides.
package promo

import "time"

const DefaultInterval = 5 * time.Second

type Slide struct {
	Title       string `json:"title"`
	Highlight   string `json:"highlight"`
	Description string `json:"description"`
	Badge       string `json:"badge"`
	Image       string `json:"image"`
}

var DefaultSlides = []Slide{
	{
		Title:       "COLEÇÃO | 2026",
		Highlight:   "URBAN TIDE PREMIUM",
		Description: "Experimente o máximo conforto e elegância com nossas novas polos de algodão pima peruano.",
		Badge:       "LANÇAMENTO",
		Image:       "/assets/hero-premium.jpg",
	},
	{
		Title:       "CLÁSSICOS",
		Highlight:   "ATEMPORAIS",
		Description: "Peças essenciais que nunca saem de moda. Qualidade e durabilidade para o seu dia a dia.",
		Badge:       "BEST SELLERS",
		Image:       "/assets/hero-classics.jpg",
	},
}

// View is the rotator s// View is one slide as served to the page. NextAt tells the client when
// to ask again for the automatic advance.
type View struct {
	Index      int       `json:"index"`
	Total      int       `json:"total"`
	Slide      Slide     `json:"slide"`
	Slides     []Slide   `json:"slides"`
	IntervalMS int64     `json:"interval_ms"`
	NextAt     time.Time `json:"next_at"`
}

// Rotator maps wall-clock time onto the slide list, so every request sees
// the same automatic rotation without any shared mutable index. Manual
// navigation is computed from the index the client sends and changes
// nothing on the server.
type Rotator struct {
	slides   []Slide
	interval time.Duration

	// Clock defaults to time.Now.
	Clock func() time.Time
}

func NewRotator(slides []Slide, interval time.Duration) *Rotator {
	if len(slides) == 0 {
		slides = DefaultSlides
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Rotator{slides: slides, interval: interval, Clock: time.Now}
}

func (r *Rotator) Total() int { return len(r.slides) }

// Current is the slide the automatic rotation shows right now.
func (r *Rotator) Current() View { return r.At(r.Clock()) }

// At is the slide shown at t. Slot boundaries are multiples of the
// interval since the Unix epoch.
func (r *Rotator) At(t time.Time) View {
	slot := t.UnixNano() / int64(r.interval)
	next := time.Unix(0, (slot+1)*int64(r.interval)).UTC()
	return r.view(int(slot%int64(len(r.slides))), next)
}

// Step moves step slides away from the client's index, wrapping around.
// An out of range from is rejected.
func (r *Rotator) Step(from, step int) (View, bool) {
	if !r.valid(from) {
		return View{}, false
	}
	n := len(r.slides)
	return r.Show(((from+step)%n + n) % n)
}

// Show returns slide i with a fresh interval before the next advance.
func (r *Rotator) Show(i int) (View, bool) {
	if !r.valid(i) {
		return View{}, false
	}
	return r.view(i, r.Clock().Add(r.interval).UTC()), true
}

func (r *Rotator) valid(i int) bool { return i >= 0 && i < len(r.slides) }

func (r *Rotator) view(i int, next time.Time) View {
	return View{
		Index:      i,
		Total:      len(r.slides),
		Slide:      r.slides[i],
		Slides:     r.slides,
		IntervalMS: r.interval.Milliseconds(),
		NextAt:     next,
	}
}
