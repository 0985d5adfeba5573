package policy

// HelpItem 描述欢迎页上的一项说明，可附带外部链接或测验入口。
type HelpItem struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Link         string `json:"link,omitempty"`
	LinkText     string `json:"linkText,omitempty"`
	IsQuizButton bool   `json:"isQuizButton,omitempty"`
}

// Welcome 是前端首次进入时展示的欢迎内容。
type Welcome struct {
	Title                 string     `json:"title"`
	Intro                 string     `json:"intro"`
	HelpItems             []HelpItem `json:"helpItems"`
	ExampleQuestionsTitle string     `json:"exampleQuestionsTitle"`
	ExampleQuestions      []string   `json:"exampleQuestions"`
	ClosingRemark         string     `json:"closingRemark"`
}

// WelcomeContent returns the fixed welcome page content.
func WelcomeContent() Welcome {
	return Welcome{
		Title: "歡迎使用國內出差旅費智能問答",
		Intro: "我可以依據公司「國內出差旅費」規定，回答交通、住宿、膳雜費與報支程序的相關問題。",
		HelpItems: []HelpItem{
			{
				Title:    "操作手冊",
				Content:  "不熟悉系統報支流程嗎？請先下載操作手冊。",
				Link:     ManualURL,
				LinkText: "操作手冊下載點",
			},
			{
				Title:    "教學影片",
				Content:  "三分鐘看懂出差旅費怎麼報。",
				Link:     VideoURL,
				LinkText: "影片觀賞",
			},
			{
				Title:        "小測驗",
				Content:      "AI 會依規定即時出 10 題選擇題，測測您對規定的熟悉程度。",
				LinkText:     "開始測驗",
				IsQuizButton: true,
			},
			{
				Title:   "費用試算",
				Content: "林口廠與麥寮廠出差可使用試算精靈，快速確認可報支的交通與住宿項目。",
			},
		},
		ExampleQuestionsTitle: "您可以這樣問",
		ExampleQuestions: []string{
			"住宿費怎麼算？",
			"林口廠出差要從哪個高鐵站搭車？",
			"當天來回可以報膳雜費嗎？",
			"麥寮廠交通車客滿時可以搭計程車嗎？",
			"出差結束後多久內要提出報支？",
		},
		ClosingRemark: "有任何出差旅費的疑問，直接在下方輸入吧！",
	}
}
