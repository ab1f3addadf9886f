package llm

import "strings"

// parseTopics extracts topics from a model response expected to be a
// bulleted list. Only lines starting with a recognized bullet marker
// count; anything else is discarded even if it looks like a topic.
// This is a strict format contract, not a lenient parse.
func parseTopics(text string, maxTopics int) []string {
	var topics []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		var topic string
		switch {
		case strings.HasPrefix(line, "•"):
			topic = strings.TrimPrefix(line, "•")
		case strings.HasPrefix(line, "-"):
			topic = strings.TrimPrefix(line, "-")
		case strings.HasPrefix(line, "*"):
			topic = strings.TrimPrefix(line, "*")
		default:
			continue
		}

		topic = strings.TrimSpace(topic)
		if topic != "" {
			topics = append(topics, topic)
		}
	}

	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return topics
}
