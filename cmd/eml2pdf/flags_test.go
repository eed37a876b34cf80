package main

import (
	"testing"
)

func TestParseConvertFlagsDefaults(t *testing.T) {
	flags, positional, err := parseConvertFlags([]string{"in", "out"})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if len(positional) != 2 || positional[0] != "in" || positional[1] != "out" {
		t.Errorf("positional = %v, want [in out]", positional)
	}
	if flags.recursive || flags.overwrite || flags.noAttachments || flags.forceText {
		t.Errorf("boolean flags set by default: %+v", flags)
	}
	if flags.workers != 0 {
		t.Errorf("workers = %d, want 0", flags.workers)
	}
}

func TestParseConvertFlagsAll(t *testing.T) {
	flags, positional, err := parseConvertFlags([]string{
		"--recursive", "--overwrite", "--no-attachments",
		"--attachments-dir", "files",
		"--force-text",
		"-w", "4",
		"-t", "45s",
		"-c", "conf.yaml",
		"-q",
		"-p", "a4",
		"--orientation", "landscape",
		"--margin", "1.5",
		"inbox", "outbox",
	})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if !flags.recursive || !flags.overwrite || !flags.noAttachments || !flags.forceText {
		t.Errorf("boolean flags not set: %+v", flags)
	}
	if flags.attachmentsDir != "files" {
		t.Errorf("attachmentsDir = %q, want files", flags.attachmentsDir)
	}
	if flags.workers != 4 {
		t.Errorf("workers = %d, want 4", flags.workers)
	}
	if flags.timeout != "45s" {
		t.Errorf("timeout = %q, want 45s", flags.timeout)
	}
	if flags.common.config != "conf.yaml" || !flags.common.quiet {
		t.Errorf("common flags = %+v", flags.common)
	}
	if flags.page.size != "a4" || flags.page.orientation != "landscape" || flags.page.margin != 1.5 {
		t.Errorf("page flags = %+v", flags.page)
	}
	if len(positional) != 2 || positional[0] != "inbox" {
		t.Errorf("positional = %v", positional)
	}
}

func TestParseConvertFlagsUnknown(t *testing.T) {
	if _, _, err := parseConvertFlags([]string{"--bogus"}); err == nil {
		t.Error("parseConvertFlags() with unknown flag, want error")
	}
}

func TestParseConvertFlagsInterspersed(t *testing.T) {
	flags, positional, err := parseConvertFlags([]string{"in", "--recursive", "out"})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}
	if !flags.recursive {
		t.Error("recursive not parsed when interspersed")
	}
	if len(positional) != 2 {
		t.Errorf("positional = %v, want [in out]", positional)
	}
}
