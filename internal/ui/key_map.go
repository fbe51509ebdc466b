package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the player.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	play     key.Binding
	back     key.Binding
	tab      key.Binding
	backTab  key.Binding
	pause    key.Binding
	next     key.Binding
	prev     key.Binding
	shuffle  key.Binding
	repeat   key.Binding
	holiday  key.Binding
	artist   key.Binding
	favorite key.Binding
	block    key.Binding
	louder   key.Binding
	quieter  key.Binding
	mute     key.Binding
	preset   key.Binding
	sort     key.Binding
	rescan   key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		play:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play/open")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		backTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		pause:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		prev:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		shuffle:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		repeat:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		holiday:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "holiday mode")),
		artist:   key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "neuro/evil/duet")),
		favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		block:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "block")),
		louder:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		quieter:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		mute:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		preset:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "eq preset")),
		sort:     key.NewBinding(key.WithKeys("o", "d"), key.WithHelp("o/d", "sort title/date")),
		rescan:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "rescan")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.play, k.pause, k.next, k.tab, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.play, k.back, k.tab, k.backTab},
		{k.pause, k.next, k.prev, k.shuffle, k.repeat, k.sort},
		{k.favorite, k.block, k.artist, k.holiday, k.rescan},
		{k.louder, k.quieter, k.mute, k.preset, k.help, k.quit},
	}
}
