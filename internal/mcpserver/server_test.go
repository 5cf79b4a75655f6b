package mcpserver

import (
	"fmt"
	"math"
	"testing"

	"github.com/beac0n5/OFFAT/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int
	}{
		{name: "default limit returns all when under 100", offset: 0, limit: 0, want: []int{0, 1, 2, 3, 4}},
		{name: "explicit limit", offset: 0, limit: 2, want: []int{0, 1}},
		{name: "offset only", offset: 2, limit: 0, want: []int{2, 3, 4}},
		{name: "offset and limit", offset: 1, limit: 2, want: []int{1, 2}},
		{name: "offset at end", offset: 4, limit: 2, want: []int{4}},
		{name: "offset beyond end", offset: 5, limit: 2, want: nil},
		{name: "negative offset", offset: -1, limit: 2, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(items, tt.offset, tt.limit))
		})
	}
}

func TestPaginate_OverflowLimit(t *testing.T) {
	got := paginate([]int{0, 1, 2}, 1, math.MaxInt)
	assert.Equal(t, []int{1, 2}, got)
}

func TestPaginate_DefaultLimit(t *testing.T) {
	items := make([]int, 150)
	got := paginate(items, 0, 0)
	assert.Len(t, got, cfg.TargetLimit)
}

func TestPaginate_MaxLimitCap(t *testing.T) {
	items := make([]int, cfg.MaxLimit+500)
	got := paginate(items, 0, cfg.MaxLimit+500)
	assert.Len(t, got, cfg.MaxLimit, "limit should be capped at MaxLimit")
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error returns empty string", err: nil, want: ""},
		{
			name: "strips absolute path",
			err:  fmt.Errorf("loader: failed to open file: open /home/user/secret/api.yaml: permission denied"),
			want: "loader: failed to open file: open <path>: permission denied",
		},
		{
			name: "preserves URLs",
			err:  fmt.Errorf("only http and https schemes are allowed, got \"ftp\" in URL"),
			want: "only http and https schemes are allowed, got \"ftp\" in URL",
		},
		{
			name: "strips multiple paths",
			err:  fmt.Errorf("compare /tmp/a.yaml and /tmp/b.yaml"),
			want: "compare <path> and <path>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestNoteLogger(t *testing.T) {
	logger, sink := newNoteLogger()

	logger.Debug("not collected")
	logger.Info("not collected either")
	logger.With("source", "/home/user/api.yaml").Warn("skipping server", "url", "ftp://x")
	logger.Error("invalid port number, using scheme default", "port", "abc")

	notes := sink.notes()
	assert.Equal(t, []string{
		`level=WARN msg="skipping server" source=<path> url=ftp://x`,
		`level=ERROR msg="invalid port number, using scheme default" port=abc`,
	}, notes)
}

func TestNoteLogger_Empty(t *testing.T) {
	_, sink := newNoteLogger()
	assert.Empty(t, sink.notes())
}

func TestRemovePrefix(t *testing.T) {
	assert.Equal(t, "", removePrefix(testutil.Ptr("")))
	assert.Equal(t, cfg.RemovePrefix, removePrefix(nil))
}
