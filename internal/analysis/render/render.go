// Package render 把模型原始回复转换为可安全展示的结构化片段。
package render

import (
	"regexp"
	"strings"

	"github.com/zhouzirui/travel-policy/backend/internal/model/policy"
)

// Kind 表示片段类型。
type Kind string

const (
	KindText       Kind = "text"
	KindLink       Kind = "link"
	KindDisclaimer Kind = "disclaimer"
)

// Fragment 是渲染结果中的一个有序片段。
type Fragment struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Content 是按出现顺序排列的片段序列。
type Content []Fragment

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)`)

// Render 清理星号、分离免责声明并提取 markdown 链接，不会产生副作用。
func Render(raw string) Content {
	return renderWith(raw, policy.Disclaimer)
}

// RenderUser 原样返回用户输入，用户消息不做任何转换。
func RenderUser(text string) Content {
	return Content{{Kind: KindText, Text: text}}
}

func renderWith(raw, disclaimer string) Content {
	clean := strings.ReplaceAll(raw, "*", "")

	main := clean
	hasDisclaimer := false
	if disclaimer != "" {
		if idx := strings.Index(clean, disclaimer); idx >= 0 {
			main = clean[:idx]
			hasDisclaimer = true
		}
	}

	content := splitLinks(main)
	if hasDisclaimer {
		content = append(content, Fragment{Kind: KindDisclaimer, Text: disclaimer})
	}
	if len(content) == 0 {
		return Content{{Kind: KindText, Text: main}}
	}
	return content
}

func splitLinks(text string) Content {
	matches := linkPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return Content{{Kind: KindText, Text: text}}
	}

	content := make(Content, 0, len(matches)*2+1)
	cursor := 0
	for _, m := range matches {
		if m[0] > cursor {
			content = append(content, Fragment{Kind: KindText, Text: text[cursor:m[0]]})
		}
		content = append(content, Fragment{
			Kind:  KindLink,
			Label: text[m[2]:m[3]],
			URL:   text[m[4]:m[5]],
		})
		cursor = m[1]
	}
	if cursor < len(text) {
		content = append(content, Fragment{Kind: KindText, Text: text[cursor:]})
	}
	return content
}

// MainText 拼接正文片段（链接取其标签），不含免责声明。
func (c Content) MainText() string {
	var b strings.Builder
	for _, f := range c {
		switch f.Kind {
		case KindText:
			b.WriteString(f.Text)
		case KindLink:
			b.WriteString(f.Label)
		}
	}
	return b.String()
}

// PlainText 返回正文加免责声明的纯文本形式。
func (c Content) PlainText() string {
	text := c.MainText()
	for _, f := range c {
		if f.Kind == KindDisclaimer {
			text += f.Text
		}
	}
	return text
}

// HasDisclaimer 判断是否包含免责声明片段。
func (c Content) HasDisclaimer() bool {
	for _, f := range c {
		if f.Kind == KindDisclaimer {
			return true
		}
	}
	return false
}

// Links 返回全部链接片段。
func (c Content) Links() []Fragment {
	var links []Fragment
	for _, f := range c {
		if f.Kind == KindLink {
			links = append(links, f)
		}
	}
	return links
}
