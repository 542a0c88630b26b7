package update

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/taskquest/internal/focus"
	"github.com/sandeepkv93/taskquest/internal/game"
	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/scheduler"
	"github.com/sandeepkv93/taskquest/internal/store"
)

type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenGame     Screen = "game"
	ScreenGameOver Screen = "gameover"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type PaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type loginField int

const (
	fieldEmail loginField = iota
	fieldPassword
)

type LoginState struct {
	SignUp bool
	Busy   bool
	Error  string
	field  loginField
}

// refreshState coalesces task fetches: at most one is in flight, and any
// number of requests made meanwhile collapse into a single follow-up.
type refreshState struct {
	inFlight bool
	queued   bool
	seq      uint64
}

// changeFeed bridges store change callbacks into the program. ch holds at
// most one pending signal.
type changeFeed struct {
	ch   chan struct{}
	done chan struct{}
	sub  store.Subscription
	gen  uint64
}

type authFeed struct {
	ch   chan *store.User
	done chan struct{}
	sub  store.Subscription
}

type Deps struct {
	Client store.Client
	Alarms *scheduler.Engine
	Logger *log.Logger
	Config RuntimeConfig
}

type Model struct {
	Screen Screen
	User   *store.User

	Tasks    []model.Task
	Visible  []model.Task
	Filter   game.Filter
	Progress game.Progress
	Cursor   int

	Game  *game.Machine
	Focus focus.Timer

	Saga        model.Saga
	Underground bool
	Lives       int

	Capturing   bool
	Searching   bool
	Login       LoginState
	Palette     PaletteState
	HelpVisible bool

	Status        StatusBar
	Notifications []Notification

	client   store.Client
	alarms   *scheduler.Engine
	logger   *log.Logger
	cfg      RuntimeConfig
	ctx      context.Context
	refresh  refreshState
	changes  *changeFeed
	auth     *authFeed
	feedGen  uint64
	focusGen uint64
	mushroom uint64

	emailInput    textinput.Model
	passwordInput textinput.Model
	captureInput  textinput.Model
	searchInput   textinput.Model
	commandInput  textinput.Model
	timerBar      progress.Model
	loginSpinner  spinner.Model
	helpModel     help.Model
	helpViewport  viewport.Model
}

type AuthChangedMsg struct {
	User *store.User
}

// SessionRestoredMsg carries the user whose session survived a restart.
type SessionRestoredMsg struct {
	User *store.User
}

type AuthResultMsg struct {
	Op  string
	Err error
}

type TasksLoadedMsg struct {
	Seq   uint64
	Owner string
	Tasks []model.Task
	Err   error
}

type TasksChangedMsg struct {
	Gen uint64
}

type MutationDoneMsg struct {
	Op        string
	TaskID    string
	Completed bool
	Err       error
}

type AlarmMsg struct {
	Alarm scheduler.Alarm
}

type MushroomCollectedMsg struct {
	Token uint64
}

type FocusTickMsg struct {
	Gen uint64
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(deps Deps) Model {
	cfg := deps.Config
	if cfg.SchedulerBuffer == 0 {
		cfg = DefaultRuntimeConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := Model{
		Screen:   ScreenLogin,
		Filter:   game.Filter{World: model.DefaultWorld, ByWorld: cfg.FilterByWorld},
		Progress: game.Compute(nil, cfg.PointsPerTask),
		Game:     game.NewMachine(alarmsOrNil(deps.Alarms), cfg.Timings()),
		Focus:    focus.NewTimer(cfg.FocusDurations()),
		Saga:     model.Saga(cfg.Saga),
		Lives:    cfg.StartingLives,
		client:   deps.Client,
		alarms:   deps.Alarms,
		logger:   logger,
		cfg:      cfg,
		ctx:      context.Background(),
	}
	if !m.Saga.IsValid() {
		m.Saga = model.DefaultSaga
	}
	m.initBubbleComponents()
	if deps.Client != nil {
		m.auth = newAuthFeed(deps.Client)
	}
	return m
}

// alarmsOrNil keeps a nil engine from turning into a non-nil interface.
func alarmsOrNil(e *scheduler.Engine) game.Alarms {
	if e == nil {
		return nil
	}
	return e
}

func (m *Model) initBubbleComponents() {
	m.emailInput = textinput.New()
	m.emailInput.Prompt = "email> "
	m.emailInput.Placeholder = "player@mushroom.kingdom"
	m.emailInput.CharLimit = 254
	m.emailInput.Width = 36
	m.emailInput.Focus()

	m.passwordInput = textinput.New()
	m.passwordInput.Prompt = "password> "
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.EchoCharacter = '•'
	m.passwordInput.CharLimit = 72
	m.passwordInput.Width = 36

	m.captureInput = textinput.New()
	m.captureInput.Prompt = "new mission> "
	m.captureInput.Placeholder = "rescue princess p:high due:2026-12-31"
	m.captureInput.CharLimit = 240
	m.captureInput.Width = 48

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "search> "
	m.searchInput.CharLimit = 120
	m.searchInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 240
	m.commandInput.Width = 56

	m.timerBar = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.timerBar.Width = 36

	m.loginSpinner = spinner.New()
	m.loginSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.helpViewport = viewport.New(44, 14)
}

var _ tea.Model = Model{}
