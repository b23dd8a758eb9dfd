package alert

import (
	"encoding/json"
	"time"
)

// MarshalJSON encodes CloseDelay in milliseconds.
func (a Alert) MarshalJSON() ([]byte, error) {
	type alias Alert
	return json.Marshal(struct {
		alias
		CloseDelay int64 `json:"closeDelay"`
	}{alias(a), a.CloseDelay.Milliseconds()})
}

// Spec is the wire form of alert options. Nil fields take their default.
type Spec struct {
	Show         *bool      `json:"show,omitempty"`
	Color        *Color     `json:"color,omitempty"`
	Icon         *string    `json:"icon,omitempty"`
	CloseIcon    *bool      `json:"closeIcon,omitempty"`
	Title        *string    `json:"title,omitempty"`
	Content      *string    `json:"content,omitempty"`
	Toast        *bool      `json:"toast,omitempty"`
	CloseDelayMS *int64     `json:"closeDelay,omitempty"`
	Closeable    *bool      `json:"closeable,omitempty"`
	Placement    *Placement `json:"placement,omitempty"`
	Animation    *Animation `json:"animation,omitempty"`
}

// Options converts the set fields of sp into options.
func (sp Spec) Options() []Option {
	var opts []Option
	if sp.Show != nil {
		opts = append(opts, WithShow(*sp.Show))
	}
	if sp.Color != nil {
		opts = append(opts, WithColor(*sp.Color))
	}
	if sp.Icon != nil {
		opts = append(opts, WithIcon(*sp.Icon))
	}
	if sp.CloseIcon != nil {
		opts = append(opts, WithCloseIcon(*sp.CloseIcon))
	}
	if sp.Title != nil {
		opts = append(opts, WithTitle(*sp.Title))
	}
	if sp.Content != nil {
		opts = append(opts, WithContent(*sp.Content))
	}
	if sp.Toast != nil {
		opts = append(opts, WithToast(*sp.Toast))
	}
	if sp.CloseDelayMS != nil {
		opts = append(opts, WithCloseDelay(time.Duration(*sp.CloseDelayMS)*time.Millisecond))
	}
	if sp.Closeable != nil {
		opts = append(opts, WithCloseable(*sp.Closeable))
	}
	if sp.Placement != nil {
		opts = append(opts, WithPlacement(*sp.Placement))
	}
	if sp.Animation != nil {
		opts = append(opts, WithAnimation(*sp.Animation))
	}
	return opts
}
