package main

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		name   string
		event  fsnotify.Event
		script string
		want   bool
	}{
		{
			name:   "write to script",
			event:  fsnotify.Event{Name: "/work/demo.twig", Op: fsnotify.Write},
			script: "/work/demo.twig",
			want:   false,
		},
		{
			name:   "write to sibling file",
			event:  fsnotify.Event{Name: "/work/other.txt", Op: fsnotify.Write},
			script: "/work/demo.twig",
			want:   true,
		},
		{
			name:   "chmod ignored",
			event:  fsnotify.Event{Name: "/work/demo.twig", Op: fsnotify.Chmod},
			script: "/work/demo.twig",
			want:   true,
		},
		{
			name:   "editor recreate",
			event:  fsnotify.Event{Name: "/work/demo.twig", Op: fsnotify.Create},
			script: "/work/demo.twig",
			want:   false,
		},
		{
			name:   "remove ignored",
			event:  fsnotify.Event{Name: "/work/demo.twig", Op: fsnotify.Remove},
			script: "/work/demo.twig",
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldIgnoreEvent(tt.event, tt.script)
			if got != tt.want {
				t.Errorf("shouldIgnoreEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}
