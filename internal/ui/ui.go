package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cineia/cinex/internal/auth"
	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/pager"
	"github.com/cineia/cinex/internal/services"
	"github.com/cineia/cinex/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	SearchView
	DetailView
)

// browseTab selects which catalog feed the browse view shows.
type browseTab int

const (
	tabRecent browseTab = iota
	tabTop
	tabRecommended
)

func (t browseTab) String() string {
	switch t {
	case tabTop:
		return "Top Rated"
	case tabRecommended:
		return "For You"
	default:
		return "Recent"
	}
}

// inputMode selects what the detail view's text input submits to.
type inputMode int

const (
	inputNone inputMode = iota
	inputRating
	inputListName
	inputComment
)

// searchDebounce coalesces rapid keystrokes before a search request is
// issued. In-flight requests are not cancelled when superseded, so a slow
// response for an earlier query can still land after a later one.
const searchDebounce = 300 * time.Millisecond

const recommendationCount = 20

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	svc     services.Service
	session *auth.Session
	width   int
	height  int

	tab        browseTab
	recent     *pager.Pager[models.MovieSummary]
	top        *pager.Pager[models.MovieSummary]
	recs       []models.MovieSummary
	recsLoaded bool
	browseList list.Model

	searchInput textinput.Model
	searchList  list.Model
	searchSeq   int

	returnView ViewState
	detail     *models.MovieDetail
	comments   []models.Comment
	input      textinput.Model
	inputMode  inputMode

	status string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, svc services.Service, session *auth.Session) *Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "type to search movies"
	searchInput.CharLimit = 100

	input := textinput.New()
	input.CharLimit = 200

	m := &Model{
		ctx:         ctx,
		view:        BrowseView,
		svc:         svc,
		session:     session,
		searchInput: searchInput,
		input:       input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
	m.recent = pager.New(svc.RecentMovies, pager.DefaultPageSize)
	m.top = pager.New(svc.TopMovies, pager.DefaultPageSize)
	m.browseList = list.New(nil, list.NewDefaultDelegate(), 0, 0)
	m.browseList.Title = tabRecent.String()
	m.browseList.SetShowHelp(false)
	m.searchList = list.New(nil, list.NewDefaultDelegate(), 0, 0)
	m.searchList.Title = "Results"
	m.searchList.SetShowHelp(false)
	return m
}

// Init initializes the TUI by loading the first page of recent movies.
func (m *Model) Init() tea.Cmd {
	return m.loadBrowse()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.browseList.SetSize(msg.Width-4, msg.Height-8)
		m.searchList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgMoviesFetched:
		data := msg.data.(struct {
			tab    browseTab
			movies []models.MovieSummary
			err    error
		})
		if data.tab != m.tab {
			return m, nil
		}
		if data.err != nil {
			if errors.Is(data.err, shared.ErrServiceUnavailable) && len(m.browseList.Items()) == 0 {
				m.err = data.err
				return m, nil
			}
			m.status = m.notice(data.err)
			return m, nil
		}
		if data.tab == tabRecommended {
			m.recs = data.movies
			m.recsLoaded = true
		}
		m.status = ""
		m.browseList.SetItems(movieItems(data.movies))
		return m, nil

	case MsgSearchDebounce:
		seq := msg.data.(int)
		query := strings.TrimSpace(m.searchInput.Value())
		if seq != m.searchSeq || query == "" {
			return m, nil
		}
		return m, m.search(query)

	case MsgSearchResults:
		data := msg.data.(struct {
			movies []models.MovieSummary
			err    error
		})
		if data.err != nil {
			m.status = m.notice(data.err)
			return m, nil
		}
		// Applied unconditionally: a stale response for a superseded
		// query overwrites newer results.
		m.status = ""
		m.searchList.SetItems(movieItems(data.movies))
		return m, nil

	case MsgDetailFetched:
		data := msg.data.(struct {
			detail *models.MovieDetail
			err    error
		})
		if data.err != nil {
			m.status = m.notice(data.err)
			return m, nil
		}
		m.returnView = m.view
		m.detail = data.detail
		m.comments = nil
		m.inputMode = inputNone
		m.status = ""
		m.view = DetailView
		cmds := []tea.Cmd{m.fetchComments(data.detail.ID)}
		if m.session.IsAuthenticated() {
			cmds = append(cmds, m.recordView(data.detail.ID))
		}
		return m, tea.Batch(cmds...)

	case MsgCommentsFetched:
		data := msg.data.(struct {
			comments []models.Comment
			err      error
		})
		if data.err == nil {
			m.comments = data.comments
		}
		return m, nil

	case MsgActionDone:
		data := msg.data.(struct {
			label string
			err   error
		})
		if data.err != nil {
			m.status = m.notice(data.err)
		} else {
			m.status = styles.ok.Render("✓ " + data.label)
		}
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case BrowseView:
		return m.renderBrowse()
	case SearchView:
		return m.renderSearch()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m, m.switchTab()
	case "/":
		m.view = SearchView
		m.status = ""
		return m, m.searchInput.Focus()
	case "m":
		if m.tab != tabRecommended {
			return m, m.loadBrowse()
		}
		return m, nil
	case "enter":
		if item, ok := m.browseList.SelectedItem().(movieItem); ok {
			return m, m.openMovie(item.movie.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.browseList, cmd = m.browseList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = BrowseView
		m.searchInput.Blur()
		m.status = ""
		return m, nil
	case "enter":
		if item, ok := m.searchList.SelectedItem().(movieItem); ok {
			return m, m.openMovie(item.movie.ID)
		}
		return m, nil
	case "up", "down":
		var cmd tea.Cmd
		m.searchList, cmd = m.searchList.Update(msg)
		return m, cmd
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.searchSeq++
		return m, tea.Batch(cmd, m.debounce(m.searchSeq))
	}
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != inputNone {
		return m.handleInputKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = m.returnView
		m.detail = nil
		m.comments = nil
		m.status = ""
		return m, nil
	case "r":
		return m, m.startInput(inputRating, "0-10")
	case "a":
		return m, m.startInput(inputListName, "list name")
	case "c":
		return m, m.startInput(inputComment, "your comment")
	case "f":
		return m, m.favorite()
	case "u":
		return m, m.unfavorite()
	}
	return m, nil
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.inputMode = inputNone
		m.input.Blur()
		return m, nil
	case "enter":
		return m, m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startInput(mode inputMode, placeholder string) tea.Cmd {
	m.inputMode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.status = ""
	return m.input.Focus()
}

func (m *Model) submitInput() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	mode := m.inputMode
	m.inputMode = inputNone
	m.input.Blur()

	if m.detail == nil || value == "" {
		return nil
	}
	movieID := m.detail.ID

	switch mode {
	case inputRating:
		rating, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.status = styles.warn.Render("rating must be a number between 0 and 10")
			return nil
		}
		return func() tea.Msg {
			return actionDoneMsg("rated", m.svc.Rate(m.ctx, movieID, rating))
		}
	case inputListName:
		return func() tea.Msg {
			return actionDoneMsg("added to "+value, m.svc.AddToList(m.ctx, movieID, value))
		}
	case inputComment:
		return func() tea.Msg {
			if err := m.svc.AddComment(m.ctx, movieID, value); err != nil {
				return actionDoneMsg("comment", err)
			}
			comments, err := m.svc.Comments(m.ctx, movieID)
			if err != nil {
				return actionDoneMsg("commented", nil)
			}
			return commentsFetchedMsg(comments, err)
		}
	}
	return nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BrowseView:
		m.browseList, cmd = m.browseList.Update(msg)
	case SearchView:
		m.searchList, cmd = m.searchList.Update(msg)
	}
	return m, cmd
}

// switchTab advances to the next browse tab and loads it if empty.
func (m *Model) switchTab() tea.Cmd {
	m.tab = (m.tab + 1) % 3
	m.browseList.Title = m.tab.String()
	m.status = ""

	switch m.tab {
	case tabRecommended:
		if m.recsLoaded {
			m.browseList.SetItems(movieItems(m.recs))
			return nil
		}
		m.browseList.SetItems(nil)
		return m.loadBrowse()
	case tabTop:
		if m.top.Len() > 0 {
			m.browseList.SetItems(movieItems(m.top.Items()))
			return nil
		}
		m.browseList.SetItems(nil)
		return m.loadBrowse()
	default:
		m.browseList.SetItems(movieItems(m.recent.Items()))
		if m.recent.Len() == 0 {
			return m.loadBrowse()
		}
		return nil
	}
}

func (m *Model) loadBrowse() tea.Cmd {
	tab := m.tab
	switch tab {
	case tabRecommended:
		return func() tea.Msg {
			ident := m.session.Identity()
			if ident == nil {
				return moviesFetchedMsg(tab, nil, shared.ErrLoginRequired)
			}
			set, err := m.svc.Recommend(m.ctx, ident.UserID, recommendationCount)
			if err != nil {
				return moviesFetchedMsg(tab, nil, err)
			}
			movies := make([]models.MovieSummary, len(set.Items))
			for i, rec := range set.Items {
				movies[i] = rec.Summary()
			}
			return moviesFetchedMsg(tab, movies, nil)
		}
	case tabTop:
		p := m.top
		return func() tea.Msg {
			err := p.LoadNext(m.ctx)
			return moviesFetchedMsg(tab, p.Items(), err)
		}
	default:
		p := m.recent
		return func() tea.Msg {
			err := p.LoadNext(m.ctx)
			return moviesFetchedMsg(tab, p.Items(), err)
		}
	}
}

func (m *Model) debounce(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg(seq)
	})
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		movies, err := m.svc.SearchMovies(m.ctx, query, 1, pager.DefaultPageSize)
		return searchResultsMsg(movies, err)
	}
}

func (m *Model) openMovie(movieID int64) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.svc.Movie(m.ctx, movieID)
		return detailFetchedMsg(detail, err)
	}
}

func (m *Model) fetchComments(movieID int64) tea.Cmd {
	return func() tea.Msg {
		comments, err := m.svc.Comments(m.ctx, movieID)
		return commentsFetchedMsg(comments, err)
	}
}

// recordView appends the opened movie to the watch history. Best effort,
// failures are not surfaced.
func (m *Model) recordView(movieID int64) tea.Cmd {
	return func() tea.Msg {
		ident := m.session.Identity()
		if ident == nil {
			return nil
		}
		_ = m.svc.RecordView(m.ctx, ident.UserID, movieID)
		return nil
	}
}

func (m *Model) favorite() tea.Cmd {
	if m.detail == nil {
		return nil
	}
	movieID := m.detail.ID
	return func() tea.Msg {
		return actionDoneMsg("favorited", m.svc.Favorite(m.ctx, movieID))
	}
}

func (m *Model) unfavorite() tea.Cmd {
	if m.detail == nil {
		return nil
	}
	movieID := m.detail.ID
	return func() tea.Msg {
		return actionDoneMsg("unfavorited", m.svc.Unfavorite(m.ctx, movieID))
	}
}

// notice maps an operation error to a user-facing status line.
func (m *Model) notice(err error) string {
	switch {
	case errors.Is(err, shared.ErrLoginRequired):
		return styles.warn.Render("you must log in first (cinex auth login)")
	case errors.Is(err, shared.ErrDuplicateEntry):
		return styles.warn.Render("already in that list")
	case errors.Is(err, shared.ErrServiceUnavailable):
		return styles.err.Render("service unreachable, check the API server")
	default:
		return styles.err.Render(err.Error())
	}
}

func (m *Model) renderBrowse() string {
	tabs := make([]string, 0, 3)
	for _, t := range []browseTab{tabRecent, tabTop, tabRecommended} {
		label := t.String()
		if t == m.tab {
			label = styles.title.Render(label)
		} else {
			label = styles.help.Render(label)
		}
		tabs = append(tabs, label)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.tab, m.keys.search, m.keys.more, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s\n%s\n%s",
		strings.Join(tabs, "  "), m.browseList.View(), m.status, helpView)
}

func (m *Model) renderSearch() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("Search: %s\n\n%s\n%s\n%s",
		m.searchInput.View(), m.searchList.View(), m.status, helpView)
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.help.Render("Loading...")
	}
	d := m.detail

	var b strings.Builder
	b.WriteString(styles.title.Render(d.Title))
	b.WriteString("\n")

	meta := shared.ReleaseYear(d.ReleaseDate)
	if d.Runtime > 0 {
		meta = fmt.Sprintf("%s • %d min", meta, d.Runtime)
	}
	if d.Director != "" {
		meta = fmt.Sprintf("%s • dir. %s", meta, d.Director)
	}
	b.WriteString(meta)
	b.WriteString("\n")

	rating := fmt.Sprintf("%.1f (%d votes)", d.VoteAverage, d.VoteCount)
	if d.UserRating != nil {
		rating = fmt.Sprintf("%s • yours: %.1f", rating, *d.UserRating)
	}
	b.WriteString(rating)
	b.WriteString("\n\n")

	if d.Overview != "" {
		b.WriteString(shared.Truncate(d.Overview, 400))
		b.WriteString("\n\n")
	}

	if len(d.Actors) > 0 {
		cast := make([]string, 0, 5)
		for i, a := range d.Actors {
			if i == 5 {
				break
			}
			cast = append(cast, a.Name)
		}
		b.WriteString(styles.help.Render("Cast: " + strings.Join(cast, ", ")))
		b.WriteString("\n\n")
	}

	if len(m.comments) > 0 {
		b.WriteString(styles.warn.Render(fmt.Sprintf("Comments (%d)", len(m.comments))))
		for i, c := range m.comments {
			if i == 3 {
				break
			}
			b.WriteString(fmt.Sprintf("\n  %s: %s", c.Username, shared.Truncate(c.Body, 80)))
		}
		b.WriteString("\n\n")
	}

	if m.inputMode != inputNone {
		var prompt string
		switch m.inputMode {
		case inputRating:
			prompt = "Rate"
		case inputListName:
			prompt = "Add to list"
		case inputComment:
			prompt = "Comment"
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", prompt, m.input.View()))
	}

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.rate, m.keys.favorite, m.keys.addList, m.keys.comment, m.keys.back, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}
