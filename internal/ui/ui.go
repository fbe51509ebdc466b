package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/player"
	"github.com/desertthunder/nmp/internal/tasks"
	"github.com/samber/lo"
)

const volumeStep = 5

var artistKeys = map[string]models.Artist{"1": models.Neuro, "2": models.Evil, "3": models.Duet}

// Model represents the player state.
type Model struct {
	ctx       context.Context
	session   *tasks.Session
	view      models.View
	songs     list.Model
	playlists list.Model
	status    tasks.Status
	notice    string
	err       error
	scanning  bool
	width     int
	height    int
	help      help.Model
	keys      keyMap
}

// NewModel creates a player over a started session.
func NewModel(ctx context.Context, session *tasks.Session) *Model {
	songs := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	songs.SetShowHelp(false)
	songs.DisableQuitKeybindings()

	playlists := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	playlists.Title = "Playlists"
	playlists.SetShowHelp(false)
	playlists.DisableQuitKeybindings()

	m := &Model{
		ctx:       ctx,
		session:   session,
		songs:     songs,
		playlists: playlists,
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.refresh()
	return m
}

// Run starts the player in the alternate screen and blocks until it exits.
func Run(ctx context.Context, session *tasks.Session) error {
	p := tea.NewProgram(NewModel(ctx, session), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// Init starts listening for session events and the position tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), tick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songs.SetSize(msg.Width-4, msg.Height-9)
		m.playlists.SetSize(msg.Width-4, msg.Height-9)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		switch msg.kind {
		case MsgSessionEvent:
			ev := msg.data.(tasks.Event)
			if ev.Kind == tasks.EventError {
				m.err = ev.Err
			}
			m.refresh()
			return m, m.waitForEvent()
		case MsgSessionClosed:
			return m, tea.Quit
		case MsgTick:
			m.status = m.session.Status()
			return m, tick()
		case MsgScanComplete:
			res := msg.data.(struct {
				scan *models.ScanRecord
				err  error
			})
			m.scanning = false
			if res.err != nil {
				m.err = res.err
			} else {
				m.notice = fmt.Sprintf("Rescanned: %d songs (%d skipped)", res.scan.Songs, res.scan.Skipped)
			}
			m.refresh()
			return m, nil
		case MsgActionFailed:
			m.err = msg.data.(error)
			return m, nil
		}
	}

	return m.updateLists(msg)
}

// View renders the tabs, the current section and the transport line.
func (m *Model) View() string {
	var body string
	switch {
	case m.view.Section == models.SectionPlaylists:
		body = m.playlists.View()
	case m.view.Section == models.SectionSettings:
		body = m.renderSettings()
	default:
		body = m.songs.View()
	}

	var footer string
	switch {
	case m.err != nil:
		footer = styles.err.Render("Error: " + m.err.Error())
	case m.notice != "":
		footer = styles.ok.Render(m.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		body,
		m.renderTransport(),
		footer,
		m.help.View(m.keys),
	)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering() {
		return m.updateLists(msg)
	}
	m.err = nil
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.tab):
		return m, m.cycleSection(1)
	case key.Matches(msg, m.keys.backTab):
		return m, m.cycleSection(-1)
	case key.Matches(msg, m.keys.back):
		if m.view.IsPlaylist() {
			return m, m.do(func() error { return m.session.ShowSection(models.SectionPlaylists) })
		}
		return m.updateLists(msg)
	case key.Matches(msg, m.keys.play):
		return m, m.activate()
	case key.Matches(msg, m.keys.pause):
		return m, m.do(m.session.TogglePlayPause)
	case key.Matches(msg, m.keys.next):
		return m, m.do(m.session.Next)
	case key.Matches(msg, m.keys.prev):
		return m, m.do(m.session.Previous)
	case key.Matches(msg, m.keys.shuffle):
		if m.session.ToggleShuffle() {
			m.notice = "Shuffle on"
		} else {
			m.notice = "Shuffle off"
		}
	case key.Matches(msg, m.keys.repeat):
		m.notice = "Repeat " + m.session.CycleRepeat().String()
	case key.Matches(msg, m.keys.holiday):
		m.session.SetHolidayMode(!m.status.Holiday)
	case key.Matches(msg, m.keys.artist):
		set := m.session.ToggleArtist(artistKeys[msg.String()])
		m.notice = "Artists: " + set.String()
	case key.Matches(msg, m.keys.favorite):
		return m, m.onSelected(m.session.ToggleFavorite, "Added to favorites", "Removed from favorites")
	case key.Matches(msg, m.keys.block):
		return m, m.onSelected(m.session.ToggleBlocked, "Blocked", "Unblocked")
	case key.Matches(msg, m.keys.louder):
		m.session.SetVolume(m.status.Volume + volumeStep)
	case key.Matches(msg, m.keys.quieter):
		m.session.SetVolume(m.status.Volume - volumeStep)
	case key.Matches(msg, m.keys.mute):
		m.session.ToggleMute()
	case key.Matches(msg, m.keys.preset):
		return m, m.nextPreset()
	case key.Matches(msg, m.keys.sort):
		field := engine.SortTitle
		if msg.String() == "d" {
			field = engine.SortDate
		}
		st := m.session.SortBy(field)
		m.notice = fmt.Sprintf("Sorted by %s", st)
	case key.Matches(msg, m.keys.rescan):
		return m, m.rescan()
	default:
		return m.updateLists(msg)
	}

	m.refresh()
	return m, nil
}

func (m *Model) filtering() bool {
	return m.songs.FilterState() == list.Filtering || m.playlists.FilterState() == list.Filtering
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view.Section {
	case models.SectionPlaylists:
		m.playlists, cmd = m.playlists.Update(msg)
	case models.SectionSettings:
	default:
		m.songs, cmd = m.songs.Update(msg)
	}
	return m, cmd
}

// refresh reloads the lists and status from the session.
func (m *Model) refresh() {
	var (
		songs     []models.Song
		overview  []engine.PlaylistSummary
		favorites []string
		current   string
	)
	m.session.Inspect(func(e *engine.Engine) {
		m.view = e.View()
		songs = e.Active()
		overview = e.Overview()
		favorites = e.Members(models.Favorites)
		if song, ok := e.Current(); ok {
			current = song.Path
		}
	})
	m.status = m.session.Status()

	favs := lo.SliceToMap(favorites, func(f string) (string, bool) { return f, true })
	m.songs.SetItems(songItems(songs, current, favs))
	m.playlists.SetItems(playlistItems(overview))

	if m.view.IsPlaylist() {
		m.songs.Title = m.view.Playlist
	} else {
		m.songs.Title = m.status.Title
	}
}

func (m *Model) cycleSection(step int) tea.Cmd {
	i := slices.Index(models.Sections, m.view.Section)
	if m.view.IsPlaylist() {
		i = slices.Index(models.Sections, models.SectionPlaylists)
	}
	n := len(models.Sections)
	next := models.Sections[((i+step)%n+n)%n]
	return m.do(func() error { return m.session.ShowSection(next) })
}

// activate plays the selected song or opens the selected playlist.
func (m *Model) activate() tea.Cmd {
	switch m.view.Section {
	case models.SectionPlaylists:
		if item, ok := m.playlists.SelectedItem().(playlistItem); ok {
			return m.do(func() error { return m.session.OpenPlaylist(item.summary.Name) })
		}
	case models.SectionSettings:
	default:
		if item, ok := m.songs.SelectedItem().(songItem); ok {
			return m.do(func() error { return m.session.PlayFilename(item.song.Filename) })
		}
	}
	return nil
}

func (m *Model) onSelected(toggle func(string) (bool, error), on, off string) tea.Cmd {
	item, ok := m.songs.SelectedItem().(songItem)
	if !ok || m.view.Section == models.SectionPlaylists {
		return nil
	}
	added, err := toggle(item.song.Filename)
	if err != nil {
		return actionFailed(err)
	}
	if added {
		m.notice = fmt.Sprintf("%s: %s", on, item.song.Title)
	} else {
		m.notice = fmt.Sprintf("%s: %s", off, item.song.Title)
	}
	m.refresh()
	return nil
}

func (m *Model) nextPreset() tea.Cmd {
	names := player.PresetNames()
	i := slices.Index(names, m.status.Equalizer.Preset)
	name := names[(i+1)%len(names)]
	if err := m.session.ApplyPreset(name); err != nil {
		return actionFailed(err)
	}
	m.notice = "Equalizer: " + name
	m.refresh()
	return nil
}

// do runs a session action and reports its error as a message.
func (m *Model) do(fn func() error) tea.Cmd {
	if err := fn(); err != nil {
		return actionFailed(err)
	}
	m.refresh()
	return nil
}

func actionFailed(err error) tea.Cmd {
	return func() tea.Msg { return actionFailedMsg(err) }
}

func (m *Model) rescan() tea.Cmd {
	if m.scanning {
		return nil
	}
	m.scanning = true
	m.notice = "Rescanning music folders..."
	return func() tea.Msg {
		scan, err := m.session.Scan(m.ctx, nil, tasks.ReasonManual)
		return scanCompleteMsg(scan, err)
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	events := m.session.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return sessionClosedMsg()
		}
		return sessionEventMsg(ev)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(models.Sections))
	for _, sec := range models.Sections {
		label := strings.ToUpper(string(sec[:1])) + string(sec[1:])
		active := m.view.Section == sec || (m.view.IsPlaylist() && sec == models.SectionPlaylists)
		if active {
			tabs = append(tabs, styles.tabOn.Render(label))
		} else {
			tabs = append(tabs, styles.tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderTransport() string {
	st := m.status
	song := "Nothing playing"
	if st.Current != nil {
		song = fmt.Sprintf("%s - %s", st.Current.Artist, st.Current.Title)
	}

	volume := fmt.Sprintf("vol %d%%", st.Volume)
	if st.Muted {
		volume = "muted"
	}
	shuffle := "off"
	if st.Shuffled {
		shuffle = "on"
	}

	line := fmt.Sprintf("[%s] %s  %s/%s  repeat %s  shuffle %s  %s",
		st.State, song, st.Position, st.Duration, st.Repeat, shuffle, volume)
	return styles.statusln.Render(line)
}

func (m *Model) renderSettings() string {
	st := m.status
	var b strings.Builder

	b.WriteString(styles.title.Render("Settings") + "\n")

	holiday := "off"
	if st.Holiday {
		holiday = "on"
	}
	fmt.Fprintf(&b, "Holiday mode: %s (h)\n", holiday)
	fmt.Fprintf(&b, "  %s\n", styles.help.Render(st.Seasonal))
	fmt.Fprintf(&b, "  %s\n\n", styles.help.Render(st.Season))

	artists := lo.Map(models.SelectableArtists, func(a models.Artist, i int) string {
		mark := "[ ]"
		if slices.Contains(st.Artists, a.String()) {
			mark = "[x]"
		}
		return fmt.Sprintf("%s %d %s", mark, i+1, artistStyle(a.String()).Render(a.String()))
	})
	fmt.Fprintf(&b, "Artists: %s\n\n", strings.Join(artists, "  "))

	eq := st.Equalizer
	state := "enabled"
	if !eq.Enabled {
		state = "disabled"
	}
	fmt.Fprintf(&b, "Equalizer: %s (%s)\n", eq.Preset, state)
	bands := lo.Map(player.Bands, func(hz int, _ int) string {
		return fmt.Sprintf("%s %+.0f", bandLabel(hz), eq.Bands[fmt.Sprint(hz)])
	})
	fmt.Fprintf(&b, "  %s\n", styles.help.Render(strings.Join(bands, "  ")))
	return b.String()
}

func bandLabel(hz int) string {
	if hz >= 1000 {
		return fmt.Sprintf("%dk", hz/1000)
	}
	return fmt.Sprint(hz)
}
