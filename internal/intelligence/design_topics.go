package intelligence

import (
	"strings"

	"github.com/samber/lo"
)

type topicRule struct {
	topic    Topic
	keywords []string
}

// designTopicRules are evaluated in order; the first rule with a keyword
// contained in the message wins.
var designTopicRules = []topicRule{
	{TopicLogo, []string{"شعار", "لوجو", "لوغو", "براند", "logo", "brand"}},
	{TopicWebsite, []string{"موقع", "ويب", "website", "web", "landing page"}},
	{TopicIdentity, []string{"هوية", "علامة تجارية", "identity"}},
	{TopicCover, []string{"غلاف", "كتاب", "cover", "book"}},
	{TopicSocialMedia, []string{"منشور", "بوست", "سوشيال", "تواصل الاجتماعي", "انستقرام", "post", "social", "instagram"}},
	{TopicPresentation, []string{"عرض تقديمي", "شرائح", "بوربوينت", "presentation", "slides", "powerpoint"}},
}

// ClassifyTopic maps a free-form message to a design topic. Matching is a
// case-insensitive substring test; unmatched messages are TopicGeneral.
func ClassifyTopic(message string) Topic {
	msg := strings.ToLower(message)
	rule, ok := lo.Find(designTopicRules, func(r topicRule) bool {
		return lo.SomeBy(r.keywords, func(kw string) bool {
			return strings.Contains(msg, kw)
		})
	})
	if !ok {
		return TopicGeneral
	}
	return rule.topic
}

var topicLabels = map[Topic]string{
	TopicLogo:         "تصميم الشعار",
	TopicWebsite:      "تصميم الموقع الإلكتروني",
	TopicIdentity:     "الهوية البصرية",
	TopicCover:        "تصميم الأغلفة",
	TopicSocialMedia:  "تصاميم وسائل التواصل الاجتماعي",
	TopicPresentation: "العروض التقديمية",
	TopicGeneral:      "التصميم بشكل عام",
}

// Label returns the Arabic display name of the topic.
func (t Topic) Label() string {
	if l, ok := topicLabels[t]; ok {
		return l
	}
	return topicLabels[TopicGeneral]
}
