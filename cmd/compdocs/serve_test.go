package main

import "testing"

func TestNewServeCmd(t *testing.T) {
	cmd := newServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}
	if cmd.RunE == nil {
		t.Error("RunE is nil")
	}
}

func TestWorkspaceLoader(t *testing.T) {
	config := defaultProject(t)
	root := newRootCmd()

	serve, _, err := root.Find([]string{"serve"})
	if err != nil {
		t.Fatal(err)
	}
	if err := root.PersistentFlags().Set("config", config); err != nil {
		t.Fatal(err)
	}

	gen, err := workspaceLoader(serve)()
	if err != nil {
		t.Fatalf("loader error = %v", err)
	}
	if gen.Global() != "ui" {
		t.Errorf("Global() = %q, want ui", gen.Global())
	}
}
