// Package robots implements the documented heuristic approximation of the
// robots/indexability rules: meta and header robots directives, a minimal
// robots.txt evaluation for the wildcard agent group, and the combined
// verdict. It is not an authoritative legal reading of robots semantics.
package robots

import (
	"fmt"
	"strings"

	"github.com/K-Bak/geo-checker/models"
)

// Labels for the combined indexability verdict, most severe first.
const (
	LabelNoindex      = "Noindex"
	LabelNotReachable = "Not reachable"
	LabelBlocked      = "Blocked by robots.txt"
	LabelIndexable    = "Indexable"
	LabelUncertain    = "Uncertain"
)

// HasNoindex reports whether a robots directive value (meta robots content or
// X-Robots-Tag header) carries a noindex token. Values are split on commas
// and semicolons, case-insensitive.
func HasNoindex(value string) bool {
	for _, token := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if strings.EqualFold(strings.TrimSpace(token), "noindex") {
			return true
		}
	}
	return false
}

type rule struct {
	allow bool
	path  string
}

// EvaluatePath parses a robots.txt body and decides whether the wildcard
// agent group allows the given path. The returned pointer is nil when the
// body is empty or carries no applicable rules (indeterminate, treated as
// non-blocking). matched is the winning rule, e.g. "Disallow: /private".
//
// Longest matching rule wins; an empty Disallow value means "allow all" and
// never matches; on an exact length tie, allow wins.
func EvaluatePath(body, path string) (allows *bool, matched string) {
	if strings.TrimSpace(body) == "" {
		return nil, ""
	}
	if path == "" {
		path = "/"
	}

	rules := wildcardGroupRules(body)
	if len(rules) == 0 {
		return nil, ""
	}

	bestLen := -1
	var best *rule
	for i := range rules {
		r := &rules[i]
		if !strings.HasPrefix(path, r.path) {
			continue
		}
		if len(r.path) > bestLen || (len(r.path) == bestLen && r.allow && best != nil && !best.allow) {
			bestLen = len(r.path)
			best = r
		}
	}

	if best == nil {
		allowed := true
		return &allowed, ""
	}

	verdict := best.allow
	directive := "Disallow"
	if best.allow {
		directive = "Allow"
	}
	return &verdict, fmt.Sprintf("%s: %s", directive, best.path)
}

// wildcardGroupRules collects Allow/Disallow lines from every
// "User-agent: *" group.
func wildcardGroupRules(body string) []rule {
	var rules []rule
	inWildcard := false
	agentRun := false

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			if !agentRun {
				inWildcard = false
			}
			agentRun = true
			if value == "*" {
				inWildcard = true
			}
		case "allow", "disallow":
			agentRun = false
			if !inWildcard {
				continue
			}
			if key == "disallow" && value == "" {
				// Empty disallow allows everything; it never matches a path.
				continue
			}
			if value == "" {
				continue
			}
			rules = append(rules, rule{allow: key == "allow", path: value})
		default:
			agentRun = false
		}
	}
	return rules
}

// Decide combines HTTP status, robots directives and the robots.txt verdict
// into the indexability record. Label precedence: noindex beats an error
// status beats a robots.txt block; statuses 200/201/202 with no block are
// indexable; anything else is uncertain.
func Decide(status int, metaRobots, xRobotsTag string, robotsTxtStatus int, allows *bool, matchedRule string) models.Indexability {
	metaNoindex := HasNoindex(metaRobots)
	headerNoindex := HasNoindex(xRobotsTag)

	idx := models.Indexability{
		Status:          status,
		MetaRobots:      metaRobots,
		XRobotsTag:      xRobotsTag,
		RobotsTxtStatus: robotsTxtStatus,
		RobotsTxtAllows: allows,
		RobotsTxtRule:   matchedRule,
	}

	if metaNoindex {
		idx.Blocked = true
		idx.BlockedReasons = append(idx.BlockedReasons, fmt.Sprintf("meta robots contains noindex (%q)", metaRobots))
	}
	if headerNoindex {
		idx.Blocked = true
		idx.BlockedReasons = append(idx.BlockedReasons, fmt.Sprintf("X-Robots-Tag contains noindex (%q)", xRobotsTag))
	}
	// Status 0 is the fetcher's failed-fetch marker and counts as
	// unreachable like a 4xx/5xx, even though the pipeline normally stops
	// on the empty body before asking for a verdict.
	if status >= 400 || status == 0 {
		idx.Blocked = true
		idx.BlockedReasons = append(idx.BlockedReasons, fmt.Sprintf("HTTP status %d", status))
	}
	if allows != nil && !*allows {
		idx.Blocked = true
		idx.BlockedReasons = append(idx.BlockedReasons, fmt.Sprintf("robots.txt disallows path (%s)", matchedRule))
	}

	switch {
	case metaNoindex || headerNoindex:
		idx.Label = LabelNoindex
	case status >= 400 || status == 0:
		idx.Label = LabelNotReachable
	case allows != nil && !*allows:
		idx.Label = LabelBlocked
	case status == 200 || status == 201 || status == 202:
		idx.Label = LabelIndexable
	default:
		idx.Label = LabelUncertain
	}
	return idx
}
