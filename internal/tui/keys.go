package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the browser key bindings.
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Filter   key.Binding
	Grow     key.Binding
	Shrink   key.Binding
	Reset    key.Binding
	Quit     key.Binding
	Apply    key.Binding
	Cancel   key.Binding
	SortKeys []key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Next:   key.NewBinding(key.WithKeys("n", "right", "pgdown"), key.WithHelp("n", "다음 페이지")),
		Prev:   key.NewBinding(key.WithKeys("p", "left", "pgup"), key.WithHelp("p", "이전 페이지")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "검색")),
		Grow:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "페이지 크기 늘리기")),
		Shrink: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "페이지 크기 줄이기")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "초기화")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "종료")),
		Apply:  key.NewBinding(key.WithKeys("enter")),
		Cancel: key.NewBinding(key.WithKeys("esc")),
	}
	for _, k := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"} {
		km.SortKeys = append(km.SortKeys, key.NewBinding(key.WithKeys(k)))
	}
	return km
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Filter, k.Grow, k.Shrink, k.Reset, k.Quit}
}
