package adapter

import (
	"errors"
	"os/exec"
	"reflect"
	"testing"
	"time"
)

func stubLauncher(command string, args []string, startErr error) (*Launcher, *[]string) {
	var got []string
	l := NewLauncher(command, args, NullLogger())
	l.lookPath = func(string) (string, error) { return "", errors.New("not installed") }
	l.start = func(name string, args ...string) (*exec.Cmd, error) {
		got = append([]string{name}, args...)
		// Never started: Wait returns at once and Done closes
		return exec.Command(name, args...), startErr
	}
	return l, &got
}

func TestLaunchConfiguredPlayer(t *testing.T) {
	l, got := stubLauncher("/usr/bin/mpv", []string{"--fs"}, nil)

	p, err := l.Launch("https://cdn.example/abc", "Parte 1")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	want := []string{"/usr/bin/mpv", "--fs", "--force-media-title=Parte 1", "https://cdn.example/abc"}
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("args = %v, want %v", *got, want)
	}
	if p.Name() != "mpv" {
		t.Fatalf("unexpected player name %q", p.Name())
	}

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatalf("expected Done to close")
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}

func TestLaunchUnknownPlayerHasNoTitleFlag(t *testing.T) {
	l, got := stubLauncher("myplayer", nil, nil)
	if _, err := l.Launch("u", "title"); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if want := []string{"myplayer", "u"}; !reflect.DeepEqual(*got, want) {
		t.Fatalf("args = %v, want %v", *got, want)
	}
}

func TestLaunchFailureWrapsErrNoPlayer(t *testing.T) {
	l, _ := stubLauncher("mpv", nil, errors.New("exec: not found"))
	if _, err := l.Launch("u", ""); !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("expected ErrNoPlayer, got %v", err)
	}
}
