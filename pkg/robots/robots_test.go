package robots

import "testing"

const sampleRobots = `
# sample
User-agent: Googlebot
Disallow: /google-only

User-agent: *
Disallow: /private
Allow: /private/open
Disallow: /tmp
`

func TestEvaluatePath(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		path      string
		wantAllow bool
		wantNil   bool
		wantRule  string
	}{
		{
			name: "no matching rule allows",
			body: sampleRobots, path: "/public/page",
			wantAllow: true, wantRule: "",
		},
		{
			name: "disallow matches",
			body: sampleRobots, path: "/private/file",
			wantAllow: false, wantRule: "Disallow: /private",
		},
		{
			name: "longer allow beats shorter disallow",
			body: sampleRobots, path: "/private/open/page",
			wantAllow: true, wantRule: "Allow: /private/open",
		},
		{
			name: "other agent group ignored",
			body: sampleRobots, path: "/google-only",
			wantAllow: true,
		},
		{
			name:    "empty body is indeterminate",
			body:    "",
			path:    "/anything",
			wantNil: true,
		},
		{
			name:    "empty disallow never matches",
			body:    "User-agent: *\nDisallow:\n",
			path:    "/anything",
			wantNil: true,
		},
		{
			name: "equal length tie goes to allow",
			body: "User-agent: *\nDisallow: /a\nAllow: /a\n",
			path: "/a",
			wantAllow: true, wantRule: "Allow: /a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allows, rule := EvaluatePath(tt.body, tt.path)
			if tt.wantNil {
				if allows != nil {
					t.Fatalf("EvaluatePath() = %v, want nil", *allows)
				}
				return
			}
			if allows == nil {
				t.Fatal("EvaluatePath() = nil, want a verdict")
			}
			if *allows != tt.wantAllow {
				t.Errorf("EvaluatePath() allows = %v, want %v", *allows, tt.wantAllow)
			}
			if tt.wantRule != "" && rule != tt.wantRule {
				t.Errorf("EvaluatePath() rule = %q, want %q", rule, tt.wantRule)
			}
		})
	}
}

func TestHasNoindex(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"noindex", true},
		{"NOINDEX, nofollow", true},
		{"index, follow", false},
		{"noindex-like", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasNoindex(tt.value); got != tt.want {
			t.Errorf("HasNoindex(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestDecideLabelPrecedence(t *testing.T) {
	no := false
	yes := true

	tests := []struct {
		name        string
		status      int
		metaRobots  string
		xRobots     string
		allows      *bool
		wantLabel   string
		wantBlocked bool
	}{
		{"indexable", 200, "", "", &yes, LabelIndexable, false},
		{"indexable without robots verdict", 200, "", "", nil, LabelIndexable, false},
		{"noindex beats error status", 404, "noindex", "", nil, LabelNoindex, true},
		{"header noindex", 200, "", "noindex, nofollow", nil, LabelNoindex, true},
		{"not reachable", 500, "", "", nil, LabelNotReachable, true},
		{"fetch failure", 0, "", "", nil, LabelNotReachable, true},
		{"blocked by robots", 200, "", "", &no, LabelBlocked, true},
		{"noindex beats robots block", 200, "noindex", "", &no, LabelNoindex, true},
		{"uncertain status", 204, "", "", nil, LabelUncertain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.status, tt.metaRobots, tt.xRobots, 200, tt.allows, "Disallow: /x")
			if got.Label != tt.wantLabel {
				t.Errorf("Decide() label = %q, want %q", got.Label, tt.wantLabel)
			}
			if got.Blocked != tt.wantBlocked {
				t.Errorf("Decide() blocked = %v, want %v", got.Blocked, tt.wantBlocked)
			}
			if tt.wantBlocked && len(got.BlockedReasons) == 0 {
				t.Error("Decide() blocked without reasons")
			}
		})
	}
}
