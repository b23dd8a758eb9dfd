// Package alert holds the single, unscoped "current alert" shown by the host.
//
// The store has two states: idle (Show=false) and visible (Show=true).
// Set always computes every field from its options or the default table;
// it never carries values over from the previous alert. Clear flips only
// Show, leaving the other fields as they were until the next Set. There is
// no queue: a second Set replaces the current alert in place.
package alert

import (
	"time"

	"github.com/opmodel/mfe/internal/output"
)

// Color is the alert's tone.
type Color string

// Alert tones.
const (
	ColorInfo    Color = output.ToneInfo
	ColorSuccess Color = output.ToneSuccess
	ColorWarning Color = output.ToneWarning
	ColorDanger  Color = output.ToneDanger
)

// Placement is the screen corner or edge the alert is anchored to.
type Placement string

// Alert placements.
const (
	PlacementTopLeft      Placement = "top-left"
	PlacementTopCenter    Placement = "top-center"
	PlacementTopRight     Placement = "top-right"
	PlacementBottomLeft   Placement = "bottom-left"
	PlacementBottomCenter Placement = "bottom-center"
	PlacementBottomRight  Placement = "bottom-right"
)

// Animation is the enter/leave transition.
type Animation string

// Alert animations.
const (
	AnimationFade  Animation = "fade"
	AnimationSlide Animation = "slide"
	AnimationNone  Animation = "none"
)

// Alert is the current alert record. Every field always holds a concrete value.
type Alert struct {
	Show       bool          `json:"show"`
	Color      Color         `json:"color"`
	Icon       string        `json:"icon"`
	CloseIcon  bool          `json:"closeIcon"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	Toast      bool          `json:"toast"`
	CloseDelay time.Duration `json:"closeDelay"`
	Closeable  bool          `json:"closeable"`
	Placement  Placement     `json:"placement"`
	OnClose    func()        `json:"-"`
	Animation  Animation     `json:"animation"`
}

// Defaults is the fixed table every omitted option is filled from.
func Defaults() Alert {
	return Alert{
		Show:       true,
		Color:      ColorInfo,
		Icon:       "",
		CloseIcon:  true,
		Title:      "Notification",
		Content:    "Something happened.",
		Toast:      false,
		CloseDelay: 5000 * time.Millisecond,
		Closeable:  false,
		Placement:  PlacementBottomRight,
		OnClose:    nil,
		Animation:  AnimationFade,
	}
}

// Option sets one field of the next alert.
type Option func(*Alert)

// WithShow sets Show. Set defaults it to true.
func WithShow(show bool) Option { return func(a *Alert) { a.Show = show } }

// WithColor sets the tone.
func WithColor(c Color) Option { return func(a *Alert) { a.Color = c } }

// WithIcon sets the icon name.
func WithIcon(icon string) Option { return func(a *Alert) { a.Icon = icon } }

// WithCloseIcon toggles the close icon.
func WithCloseIcon(on bool) Option { return func(a *Alert) { a.CloseIcon = on } }

// WithTitle sets the title.
func WithTitle(title string) Option { return func(a *Alert) { a.Title = title } }

// WithContent sets the body text.
func WithContent(content string) Option { return func(a *Alert) { a.Content = content } }

// WithToast marks the alert as a toast that clears itself after CloseDelay.
func WithToast(on bool) Option { return func(a *Alert) { a.Toast = on } }

// WithCloseDelay sets how long a toast stays visible.
func WithCloseDelay(d time.Duration) Option { return func(a *Alert) { a.CloseDelay = d } }

// WithCloseable lets the user dismiss the alert.
func WithCloseable(on bool) Option { return func(a *Alert) { a.Closeable = on } }

// WithPlacement sets the anchor position.
func WithPlacement(p Placement) Option { return func(a *Alert) { a.Placement = p } }

// WithOnClose sets a callback run when the alert is cleared.
func WithOnClose(fn func()) Option { return func(a *Alert) { a.OnClose = fn } }

// WithAnimation sets the transition.
func WithAnimation(an Animation) Option { return func(a *Alert) { a.Animation = an } }

// Build applies opts over the default table.
func Build(opts ...Option) Alert {
	a := Defaults()
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// FromError builds danger options describing err.
func FromError(title string, err error) []Option {
	return []Option{
		WithColor(ColorDanger),
		WithTitle(title),
		WithContent(err.Error()),
		WithCloseable(true),
	}
}
