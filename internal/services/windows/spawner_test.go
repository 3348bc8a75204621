package windows

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	mu    sync.Mutex
	specs []Spec
	err   error
}

func (f *fakeCreator) CreateWindow(_ context.Context, spec Spec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.specs = append(f.specs, spec)
	return nil
}

func testOptions() Options {
	return Options{
		AllowedHost: "www.pinterest.com",
		DefaultURL:  "https://www.google.com/",
		Title:       "WebShell",
		Width:       1280,
		Height:      820,
	}
}

func TestOpen_BlocksOtherHosts(t *testing.T) {
	fc := &fakeCreator{}
	s := NewSpawner(testOptions(), fc, nil, nil)

	for _, raw := range []string{
		"https://evil.example/",
		"https://pinterest.com/",
		"https://www.pinterest.com.evil.example/",
		"https://user@evil.example/?next=www.pinterest.com",
	} {
		_, err := s.Open(context.Background(), raw)
		require.ErrorIs(t, err, ErrBlockedDomain, raw)
	}
	_, err := s.Open(context.Background(), "not a url")
	require.ErrorIs(t, err, ErrInvalidURL)
	require.Empty(t, fc.specs)
}

func TestOpen_AllowedHost(t *testing.T) {
	fc := &fakeCreator{}
	s := NewSpawner(testOptions(), fc, nil, nil)

	label, err := s.Open(context.Background(), "https://www.pinterest.com/pin/1/")
	require.NoError(t, err)
	require.Equal(t, "win-1", label)
	require.Len(t, fc.specs, 1)
	require.Equal(t, "https://www.pinterest.com/pin/1/", fc.specs[0].URL)
	require.True(t, fc.specs[0].Center)
	require.Equal(t, 1280, fc.specs[0].Width)
}

func TestTarget_IgnoresPortAndCase(t *testing.T) {
	s := NewSpawner(testOptions(), &fakeCreator{}, nil, nil)
	for _, raw := range []string{"https://www.pinterest.com:8443/a", "https://WWW.Pinterest.com/b"} {
		_, err := s.Target(raw)
		require.NoError(t, err, raw)
	}
}

func TestOpen_BlankUsesDefault(t *testing.T) {
	fc := &fakeCreator{}
	s := NewSpawner(testOptions(), fc, nil, nil)

	for _, raw := range []string{"", "   "} {
		_, err := s.Open(context.Background(), raw)
		require.NoError(t, err)
	}
	require.Len(t, fc.specs, 2)
	for _, spec := range fc.specs {
		require.Equal(t, "https://www.google.com/", spec.URL)
	}
}

func TestOpen_CreatorFailure(t *testing.T) {
	s := NewSpawner(testOptions(), &fakeCreator{err: errors.New("no display")}, nil, nil)
	_, err := s.Open(context.Background(), "")
	require.ErrorContains(t, err, "no display")
}

func TestOpen_ConcurrentLabelsUnique(t *testing.T) {
	fc := &fakeCreator{}
	s := NewSpawner(testOptions(), fc, nil, nil)

	const n = 64
	labels := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			label, err := s.Open(context.Background(), "")
			if err == nil {
				labels <- label
			}
		}()
	}
	wg.Wait()
	close(labels)

	seen := map[string]bool{}
	for l := range labels {
		require.False(t, seen[l], "duplicate label %s", l)
		seen[l] = true
	}
	require.Len(t, seen, n)
}
