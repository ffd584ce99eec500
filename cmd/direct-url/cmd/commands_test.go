package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/record"
)

const pipCommit = "7921be1537eac1e97bc40179a57f0349c2aee67d"

const pipVCS = `{"url": "https://github.com/pypa/pip.git", "vcs_info": {"vcs": "git", "commit_id": "` + pipCommit + `", "requested_revision": "main"}}`

func TestShowText(t *testing.T) {
	env := newTestEnv(t)
	env.install(t, "pip-24.0", pipVCS)
	showDistInfo = ""

	if err := run(showCmd, "pip"); err != nil {
		t.Fatalf("show: %v", err)
	}

	out := env.out.String()
	for _, want := range []string{"pip 24.0", "kind:      vcs", "commit:    " + pipCommit, "purl:      pkg:pypi/pip@24.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowJSON(t *testing.T) {
	env := newTestEnv(t)
	path := env.install(t, "proj-0.1", `{"url": "file:///home/user/proj", "dir_info": {"editable": true}}`)
	outputFormat = "json"
	showDistInfo = path
	defer func() { showDistInfo = "" }()

	if err := run(showCmd); err != nil {
		t.Fatalf("show: %v", err)
	}

	var view summaryView
	if err := json.Unmarshal(env.out.Bytes(), &view); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, env.out.String())
	}
	if view.Name != "proj" || view.Kind != "dir" || !view.Editable || !view.Present {
		t.Errorf("unexpected view %+v", view)
	}
	if view.Record["url"] != "file:///home/user/proj" {
		t.Errorf("record = %v", view.Record)
	}
}

func TestShowTOMLAndYAML(t *testing.T) {
	for _, format := range []string{"toml", "yaml"} {
		t.Run(format, func(t *testing.T) {
			env := newTestEnv(t)
			env.install(t, "pkg-1.0", `{"url": "https://x/pkg.zip", "archive_info": {"hashes": {"sha256": "abc"}}}`)
			outputFormat = format
			showDistInfo = ""

			if err := run(showCmd, "pkg"); err != nil {
				t.Fatalf("show: %v", err)
			}

			var view summaryView
			var err error
			if format == "toml" {
				_, err = toml.Decode(env.out.String(), &view)
			} else {
				err = yaml.Unmarshal(env.out.Bytes(), &view)
			}
			if err != nil {
				t.Fatalf("decode %s: %v\n%s", format, err, env.out.String())
			}
			if view.Kind != "archive" || view.Hashes["sha256"] != "abc" || !view.SecureHash {
				t.Errorf("unexpected view %+v", view)
			}
		})
	}
}

func TestShowNotFound(t *testing.T) {
	newTestEnv(t)
	showDistInfo = ""

	err := run(showCmd, "requests")
	if !errors.Is(err, dist.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParseFileCanonical(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "direct_url.json")
	if err := os.WriteFile(path, []byte(`{"archive_info":{"hash":"sha256=abc"},"url":"https://x/p.tar.gz"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run(parseCmd, path); err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := `{"archive_info": {"hash": "sha256=abc"}, "url": "https://x/p.tar.gz"}` + "\n"
	if env.out.String() != want {
		t.Errorf("output = %q, want %q", env.out.String(), want)
	}
}

func TestParseStdinYAML(t *testing.T) {
	env := newTestEnv(t)
	outputFormat = "yaml"
	parseCmd.SetIn(strings.NewReader(pipVCS))
	defer parseCmd.SetIn(nil)

	if err := run(parseCmd, "-"); err != nil {
		t.Fatalf("parse: %v", err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(env.out.Bytes(), &m); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	rec, err := record.Parse(m)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.(*record.VCSRecord).VCSInfo.CommitID != pipCommit {
		t.Errorf("round trip through YAML lost the commit: %+v", rec)
	}
}

func TestParseUnknownShape(t *testing.T) {
	env := newTestEnv(t)
	parseCmd.SetIn(strings.NewReader(`{"url": "x", "unknown_info": {}}`))
	defer parseCmd.SetIn(nil)

	if err := run(parseCmd); err != nil {
		t.Fatalf("unknown shape should not be an error: %v", err)
	}
	if !strings.Contains(env.out.String(), "no known direct URL shape") {
		t.Errorf("output = %q", env.out.String())
	}
}

func TestParseInvalid(t *testing.T) {
	newTestEnv(t)
	parseCmd.SetIn(strings.NewReader(`{"url": "x", "vcs_info": {"vcs": "git"}}`))
	defer parseCmd.SetIn(nil)

	err := run(parseCmd)
	if !errors.Is(err, record.ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func resetListFlags() {
	listKind, listEditable, listAll = "", false, false
}

func TestListText(t *testing.T) {
	env := newTestEnv(t)
	env.install(t, "pip-24.0", pipVCS)
	env.install(t, "proj-0.1", `{"url": "file:///p", "dir_info": {"editable": true}}`)
	env.install(t, "requests-2.31.0", "")
	resetListFlags()

	if err := run(listCmd); err != nil {
		t.Fatalf("list: %v", err)
	}

	out := env.out.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "pip") || !strings.Contains(out, "file:///p (editable)") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "requests") {
		t.Errorf("requests has no descriptor and should be hidden:\n%s", out)
	}
}

func TestListJSONFiltered(t *testing.T) {
	env := newTestEnv(t)
	env.install(t, "pip-24.0", pipVCS)
	env.install(t, "proj-0.1", `{"url": "file:///p", "dir_info": {}}`)
	env.install(t, "bad-1.0", `{"url": `)
	resetListFlags()
	listKind = "DIR"
	outputFormat = "json"
	defer resetListFlags()

	if err := run(listCmd); err != nil {
		t.Fatalf("list: %v", err)
	}

	var view listView
	if err := json.Unmarshal(env.out.Bytes(), &view); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(view.Distributions) != 1 || view.Distributions[0].Name != "proj" {
		t.Errorf("distributions = %+v", view.Distributions)
	}
	if len(view.Errors) != 1 || !strings.Contains(view.Errors[0], "bad") {
		t.Errorf("errors = %v", view.Errors)
	}
}

func TestListInvalidKind(t *testing.T) {
	newTestEnv(t)
	resetListFlags()
	listKind = "wheel"
	defer resetListFlags()

	if err := run(listCmd); err == nil {
		t.Error("expected error for invalid kind")
	}
}

func TestEditable(t *testing.T) {
	env := newTestEnv(t)
	env.install(t, "proj-0.1", `{"url": "file:///p", "dir_info": {"editable": true}}`)
	env.install(t, "pip-24.0", pipVCS)
	editableDistInfo, editableCheck = "", false

	tests := []struct {
		name string
		want string
	}{
		{"proj", "true\n"},
		{"pip", "false\n"},
	}
	for _, tt := range tests {
		env.out.Reset()
		if err := run(editableCmd, tt.name); err != nil {
			t.Fatalf("editable %s: %v", tt.name, err)
		}
		if env.out.String() != tt.want {
			t.Errorf("editable %s = %q, want %q", tt.name, env.out.String(), tt.want)
		}
	}

	editableCheck = true
	defer func() { editableCheck = false }()
	if err := run(editableCmd, "proj"); err != nil {
		t.Errorf("--check proj: %v", err)
	}
	if err := run(editableCmd, "pip"); !errors.Is(err, errNotEditable) {
		t.Errorf("--check pip = %v, want errNotEditable", err)
	}
}

func resetWriteFlags() {
	writeDistInfo, writeDryRun, writeURL = "", false, ""
	vcsName, vcsCommitID = "git", ""
	vcsRequestedRevision, vcsResolvedRevision, vcsResolvedRevisionType = "", "", ""
	archiveHashes, archiveLegacyHash, archiveFile, archiveAlgorithms = nil, "", "", nil
	dirEditable = false
	if f := writeDirCmd.Flags().Lookup("editable"); f != nil {
		f.Changed = false
	}
}

func TestWriteDirEditable(t *testing.T) {
	env := newTestEnv(t)
	path := env.install(t, "proj-0.1", "")
	resetWriteFlags()
	defer resetWriteFlags()

	writeURL = "file:///home/user/project"
	if err := writeDirCmd.Flags().Set("editable", "true"); err != nil {
		t.Fatal(err)
	}

	if err := run(writeDirCmd, "proj"); err != nil {
		t.Fatalf("write dir: %v", err)
	}

	want := `{"dir_info": {"editable": true}, "url": "file:///home/user/project"}`
	if got := readDescriptor(t, path); got != want {
		t.Errorf("descriptor = %s, want %s", got, want)
	}
	if !strings.Contains(env.out.String(), "wrote direct_url.json") {
		t.Errorf("output = %q", env.out.String())
	}
}

func TestWriteDirWithoutEditable(t *testing.T) {
	env := newTestEnv(t)
	path := env.install(t, "proj-0.1", "")
	resetWriteFlags()
	defer resetWriteFlags()

	writeURL = "file:///p"
	writeDistInfo = path
	if err := run(writeDirCmd); err != nil {
		t.Fatalf("write dir: %v", err)
	}

	if got := readDescriptor(t, path); got != `{"dir_info": {}, "url": "file:///p"}` {
		t.Errorf("descriptor = %s", got)
	}
}

func TestWriteVCS(t *testing.T) {
	env := newTestEnv(t)
	path := env.install(t, "pip-24.0", "")
	resetWriteFlags()
	defer resetWriteFlags()

	writeURL = "https://github.com/pypa/pip.git"
	vcsCommitID = pipCommit
	vcsRequestedRevision = "main"

	if err := run(writeVCSCmd, "pip"); err != nil {
		t.Fatalf("write vcs: %v", err)
	}

	rec, err := record.ParseFile(filepath.Join(path, dist.MetadataName))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	vcs := rec.(*record.VCSRecord)
	if vcs.VCSInfo.CommitID != pipCommit || *vcs.VCSInfo.RequestedRevision != "main" || vcs.VCSInfo.ResolvedRevision != nil {
		t.Errorf("unexpected record %+v", vcs.VCSInfo)
	}
}

func TestWriteVCSRequiresCommit(t *testing.T) {
	env := newTestEnv(t)
	env.install(t, "pip-24.0", "")
	resetWriteFlags()
	defer resetWriteFlags()

	writeURL = "https://github.com/pypa/pip.git"
	if err := run(writeVCSCmd, "pip"); err == nil {
		t.Error("expected error without --commit")
	}
}

func TestWriteRequiresURL(t *testing.T) {
	env := newTestEnv(t)
	env.install(t, "proj-0.1", "")
	resetWriteFlags()
	defer resetWriteFlags()

	if err := run(writeDirCmd, "proj"); err == nil || !strings.Contains(err.Error(), "--url") {
		t.Errorf("expected --url error, got %v", err)
	}
}

func TestWriteArchiveFromFile(t *testing.T) {
	env := newTestEnv(t)
	path := env.install(t, "pkg-1.0", "")
	resetWriteFlags()
	defer resetWriteFlags()

	archive := filepath.Join(t.TempDir(), "pkg-1.0.tar.gz")
	if err := os.WriteFile(archive, nil, 0644); err != nil {
		t.Fatal(err)
	}

	writeURL = "https://x/pkg-1.0.tar.gz"
	archiveFile = archive
	archiveHashes = []string{"md5=override"}
	archiveLegacyHash = "sha1=legacy"

	if err := run(writeArchiveCmd, "pkg"); err != nil {
		t.Fatalf("write archive: %v", err)
	}

	want := `{"archive_info": {"hash": "sha1=legacy", "hashes": {"md5": "override", "sha256": "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"}}, "url": "https://x/pkg-1.0.tar.gz"}`
	if got := readDescriptor(t, path); got != want {
		t.Errorf("descriptor = %s\nwant %s", got, want)
	}
}

func TestWriteArchiveWeakHashWarnsOnStderr(t *testing.T) {
	env := newTestEnv(t)
	env.install(t, "pkg-1.0", "")
	resetWriteFlags()
	defer resetWriteFlags()

	writeURL = "https://x/pkg.zip"
	archiveHashes = []string{"crc32=abc"}
	if err := run(writeArchiveCmd, "pkg"); err != nil {
		t.Fatalf("write archive: %v", err)
	}

	if !strings.Contains(env.errOut.String(), "no hash uses a guaranteed algorithm") {
		t.Errorf("stderr = %q, want weak hash warning", env.errOut.String())
	}
	if strings.Contains(env.out.String(), "guaranteed algorithm") {
		t.Errorf("warning leaked to stdout: %q", env.out.String())
	}
}

func TestWriteArchiveInvalidHash(t *testing.T) {
	env := newTestEnv(t)
	env.install(t, "pkg-1.0", "")
	resetWriteFlags()
	defer resetWriteFlags()

	writeURL = "https://x/pkg.zip"
	archiveHashes = []string{"nohash"}
	if err := run(writeArchiveCmd, "pkg"); err == nil {
		t.Error("expected error for hash without '='")
	}
}

func TestWriteDryRunAndUnchanged(t *testing.T) {
	existing := `{"dir_info": {}, "url": "file:///p"}`
	env := newTestEnv(t)
	path := env.install(t, "proj-0.1", existing)
	resetWriteFlags()
	defer resetWriteFlags()

	writeURL = "file:///p"
	if err := run(writeDirCmd, "proj"); err != nil {
		t.Fatalf("write dir: %v", err)
	}
	if !strings.Contains(env.out.String(), "unchanged") {
		t.Errorf("output = %q", env.out.String())
	}

	env.out.Reset()
	writeURL = "file:///other"
	writeDryRun = true
	if err := run(writeDirCmd, "proj"); err != nil {
		t.Fatalf("write dir --dry-run: %v", err)
	}
	if !strings.Contains(env.out.String(), "would write") {
		t.Errorf("output = %q", env.out.String())
	}
	if got := readDescriptor(t, path); got != existing {
		t.Errorf("dry run modified the descriptor: %s", got)
	}
}

func TestRemove(t *testing.T) {
	env := newTestEnv(t)
	path := env.install(t, "proj-0.1", `{"url": "file:///p", "dir_info": {}}`)
	removeDistInfo, removeDryRun = "", false

	if err := run(removeCmd, "proj"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(path, dist.MetadataName)); !os.IsNotExist(err) {
		t.Error("descriptor should be removed")
	}

	env.out.Reset()
	if err := run(removeCmd, "proj"); err != nil {
		t.Fatalf("remove again: %v", err)
	}
	if !strings.Contains(env.out.String(), "no direct_url.json") {
		t.Errorf("output = %q", env.out.String())
	}
}

func TestHash(t *testing.T) {
	env := newTestEnv(t)
	file := filepath.Join(t.TempDir(), "empty.whl")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	hashAlgorithms = []string{"sha256", "md5"}
	defer func() { hashAlgorithms = nil }()

	if err := run(hashCmd, file); err != nil {
		t.Fatalf("hash: %v", err)
	}

	want := "md5=d41d8cd98f00b204e9800998ecf8427e\nsha256=e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855\n"
	if env.out.String() != want {
		t.Errorf("output = %q, want %q", env.out.String(), want)
	}
}

func TestHashUnsupportedAlgorithm(t *testing.T) {
	newTestEnv(t)
	file := filepath.Join(t.TempDir(), "empty.whl")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	hashAlgorithms = []string{"shake_128"}
	defer func() { hashAlgorithms = nil }()

	if err := run(hashCmd, file); err == nil {
		t.Error("expected error for shake_128")
	}
}

func TestInfoCommand(t *testing.T) {
	env := newTestEnv(t)
	env.install(t, "pip-24.0", pipVCS)
	env.install(t, "requests-2.31.0", "")

	if err := run(infoCmd); err != nil {
		t.Fatalf("info: %v", err)
	}

	out := env.out.String()
	if !strings.Contains(out, "direct-url ") || !strings.Contains(out, "(2 distributions, 1 with direct_url.json)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)
	versionCmd.Run(versionCmd, nil)
	if !strings.HasPrefix(env.out.String(), "direct-url dev\n") {
		t.Errorf("output = %q", env.out.String())
	}
}
