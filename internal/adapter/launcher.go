package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/mmcdole/aulas/internal/domain"
)

// ErrNoPlayer is returned when no configured or detected player could be started
var ErrNoPlayer = errors.New("no video player available")

// Launcher starts media URLs in an external player
type Launcher struct {
	command string   // configured player command, empty to auto-detect
	args    []string // additional arguments for the player
	logger  *slog.Logger

	// lookPath and start are replaced in tests
	lookPath func(string) (string, error)
	start    func(name string, args ...string) (*exec.Cmd, error)
}

// playerSpec describes how to start one known player
type playerSpec struct {
	titleFlag string            // window title flag, e.g. "--force-media-title="
	commands  map[string]string // platform -> executable
}

// players registry of the players aulas knows how to drive
var players = map[string]playerSpec{
	"mpv": {
		titleFlag: "--force-media-title=",
		commands:  map[string]string{"darwin": "mpv", "linux": "mpv", "windows": "mpv"},
	},
	"vlc": {
		titleFlag: "--meta-title=",
		commands:  map[string]string{"darwin": "vlc", "linux": "vlc", "windows": "vlc"},
	},
	"celluloid": {
		commands: map[string]string{"linux": "celluloid"},
	},
	"haruna": {
		commands: map[string]string{"linux": "haruna"},
	},
	"iina": {
		titleFlag: "--mpv-force-media-title=",
		commands:  map[string]string{"darwin": "iina-cli"},
	},
	"potplayer": {
		commands: map[string]string{"windows": "PotPlayerMini64.exe"},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"mpv", "celluloid", "haruna", "vlc"},
	"windows": {"mpv", "vlc", "potplayer"},
}

// Player is a running external player process. It implements domain.Player.
type Player struct {
	name string
	cmd  *exec.Cmd
	done chan struct{}
	once sync.Once
}

// Name returns the player executable that was started
func (p *Player) Name() string { return p.name }

// Done is closed when the player process exits
func (p *Player) Done() <-chan struct{} { return p.done }

// Stop kills the player if it is still running. Safe to call more than once.
func (p *Player) Stop() error {
	var err error
	p.once.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}
		if p.cmd.Process != nil {
			err = p.cmd.Process.Kill()
		}
	})
	return err
}

// NewLauncher creates a launcher for the configured command, or for the first
// installed candidate player when command is empty
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) (*exec.Cmd, error) {
			cmd := exec.Command(name, args...)
			return cmd, cmd.Start()
		},
	}
}

// playerName returns the registry key for a command path
func playerName(command string) string {
	base := strings.ToLower(filepath.Base(command))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Launch starts url in a player, titling the window with title where the
// player supports it
func (l *Launcher) Launch(url, title string) (domain.Player, error) {
	// Tier 1: User configured a specific player
	if l.command != "" {
		args := append([]string{}, l.args...)
		args = append(args, titleArgs(players[playerName(l.command)], title)...)
		l.logger.Info("using configured player", "command", l.command, "args", args)
		return l.run(l.command, append(args, url))
	}

	// Tier 2: First installed candidate
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"]
	}
	for _, name := range candidates {
		spec := players[name]
		command, ok := spec.commands[runtime.GOOS]
		if !ok {
			continue
		}
		if _, err := l.lookPath(command); err != nil {
			l.logger.Debug("player not installed", "player", name, "error", err)
			continue
		}
		args := append(append([]string{}, l.args...), titleArgs(spec, title)...)
		p, err := l.run(command, append(args, url))
		if err == nil {
			l.logger.Info("launched with detected player", "player", name)
			return p, nil
		}
		l.logger.Debug("player failed to start", "player", name, "error", err)
	}

	// Tier 3: System default handler
	l.logger.Info("no candidate players found, using system default")
	return l.launchDefault(url)
}

func titleArgs(spec playerSpec, title string) []string {
	if spec.titleFlag == "" || title == "" {
		return nil
	}
	return []string{spec.titleFlag + title}
}

func (l *Launcher) run(command string, args []string) (domain.Player, error) {
	cmd, err := l.start(command, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoPlayer, command, err)
	}
	p := &Player{name: playerName(command), cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

// launchDefault opens the URL using the system default handler
func (l *Launcher) launchDefault(url string) (domain.Player, error) {
	switch runtime.GOOS {
	case "darwin":
		return l.run("open", []string{url})
	case "windows":
		return l.run("cmd", []string{"/c", "start", "", url})
	default:
		return l.run("xdg-open", []string{url})
	}
}
