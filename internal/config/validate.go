package config

import (
	"fmt"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Table for issues. Returns nil if valid.
func Validate(t *Table) []ValidationIssue {
	if t == nil {
		return []ValidationIssue{{Path: "", Message: "config table is not loaded"}}
	}

	var issues []ValidationIssue

	if len(t.Modes) == 0 {
		issues = append(issues, ValidationIssue{
			Path:    "",
			Message: "no modes configured",
		})
	}

	if t.MaxMessagesInBacklog <= 0 {
		issues = append(issues, ValidationIssue{
			Path:    "MaxMessagesInBacklog",
			Message: fmt.Sprintf("must be positive, got %d", t.MaxMessagesInBacklog),
		})
	}
	if t.NumMessagesToShowOnConnect < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "NumMessagesToShowOnConnect",
			Message: fmt.Sprintf("must not be negative, got %d", t.NumMessagesToShowOnConnect),
		})
	} else if t.MaxMessagesInBacklog > 0 && t.NumMessagesToShowOnConnect > t.MaxMessagesInBacklog {
		issues = append(issues, ValidationIssue{
			Path: "NumMessagesToShowOnConnect",
			Message: fmt.Sprintf("must not exceed MaxMessagesInBacklog (%d), got %d",
				t.MaxMessagesInBacklog, t.NumMessagesToShowOnConnect),
		})
	}
	if t.ChatCommunicationToken == "" {
		issues = append(issues, ValidationIssue{
			Path:    "ChatCommunicationToken",
			Message: "token is required",
		})
	}

	for _, mode := range t.ModeNames() {
		issues = append(issues, validateMode(mode, t.Modes[mode])...)
	}

	return issues
}

type namedList struct {
	name string
	list EndpointList
	ok   bool
}

func validateMode(mode string, mc ModeConfig) []ValidationIssue {
	var issues []ValidationIssue

	if len(mc.MainChatServers) == 0 {
		issues = append(issues, ValidationIssue{
			Path:    mode + ".MainChatServers",
			Message: "no baskets configured",
		})
	}

	for _, basket := range mc.BasketNames() {
		chat := mc.MainChatServers[basket]
		count := chat.Len()
		if count == 0 {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("%s.MainChatServers.%s", mode, basket),
				Message: "basket has no instances",
			})
		}

		api, apiOK := mc.APIChatServers[basket]
		store, storeOK := mc.RedisServer[basket]
		lists := []namedList{
			{name: "MainChatServers", list: chat, ok: true},
			{name: "ApiChatServers", list: api, ok: apiOK},
			{name: "RedisServer", list: store, ok: storeOK},
		}

		for _, l := range lists {
			path := fmt.Sprintf("%s.%s.%s", mode, l.name, basket)
			if !l.ok {
				issues = append(issues, ValidationIssue{
					Path:    path,
					Message: "basket is missing",
				})
				continue
			}
			if !l.list.Shared && l.list.Len() != count {
				issues = append(issues, ValidationIssue{
					Path: path,
					Message: fmt.Sprintf("has %d endpoints but MainChatServers has %d instances",
						l.list.Len(), count),
				})
			}
			for i, raw := range l.list.Items {
				if _, err := ParseEndpoint(raw); err != nil {
					issues = append(issues, ValidationIssue{
						Path:    fmt.Sprintf("%s[%d]", path, i),
						Message: err.Error(),
					})
				}
			}
		}
	}

	return issues
}
