// Package policy 保存国内出差旅费制度的固定内容：系统指令、免责声明与提示语。
package policy

// Disclaimer 是模型被要求附加在每个回答末尾的固定免责声明，渲染时会单独显示。
const Disclaimer = "本系統為人工智能，僅提供輔助性質的資訊，若問題有不明之處，建議洽詢相關的審核人員，最終決策仍以會計審核員的意見為主。"

// ApologyText 在对话调用失败时代替模型回复写入对话记录。
const ApologyText = "抱歉，我現在無法回覆。請稍後再試一次。"

// QuizUnavailableText 是测验题目生成失败时展示给用户的信息。
const QuizUnavailableText = "無法產生測驗題目，請稍後再試。"

// ManualURL 与 VideoURL 是系统指令中允许模型引用的外部资源。
const (
	ManualURL = "https://intranet.example.com/travel/domestic-travel-manual.pdf"
	VideoURL  = "https://intranet.example.com/travel/domestic-travel-video"
)

// PolicyText 是国内出差旅费制度的摘要，作为对话与出题的唯一依据。
const PolicyText = `【國內出差旅費報支規定摘要】
一、適用範圍：員工奉派於國內出差，得依本規定報支交通費、住宿費、膳雜費。
二、交通費：
  1. 出差應搭乘大眾運輸工具，高鐵、台鐵依實際票價報支，須檢附票根或電子票證明。
  2. 自廠區前往高鐵站應由距離最近之車站搭車。林口廠出差者應由板橋高鐵站搭車，林口廠至板橋高鐵站計程車費以新台幣 410 元定額報支；若改由台北高鐵站搭車，須扣除台北至板橋之票價差額 40 元。
  3. 麥寮廠出差應優先搭乘公司交通車；交通車客滿經確認者，始得報支計程車費或自行開車之油資。
  4. 搭乘計程車除前項情形外，以夜間 22 時後或攜帶公務器材為限，須檢附乘車證明。
三、住宿費：
  1. 每晚住宿費上限新台幣 2000 元，檢據核實報支。
  2. 麥寮廠出差應優先入住廠區招待所；招待所客滿經確認者，始得於上限內入住外部旅館。
  3. 當日往返者不得報支住宿費。
四、膳雜費：
  1. 出差全日者，每日膳雜費新台幣 500 元；出差未滿 4 小時者不得報支。
  2. 出差期間由主辦單位提供餐點者，每餐扣減新台幣 100 元。
五、報支程序：出差結束後 10 個工作天內於系統提出申請，逾期須由部門主管簽核說明。`

// SystemInstruction 是新建对话会话时固定注入的系统指令。
const SystemInstruction = `你是「國內出差旅費智能問答」助理，僅依據下列規定回答員工的問題。

` + PolicyText + `

回答規則：
1. 一律使用繁體中文回答，語氣專業且簡潔。
2. 只能依據上述規定作答；規定未涵蓋的問題，請直接說明無相關規定並建議洽詢審核人員。
3. 需要引用操作手冊或教學影片時，使用 [操作手冊下載點](` + ManualURL + `) 或 [影片觀賞](` + VideoURL + `) 的格式。
4. 不要使用粗體、斜體或其他強調符號。
5. 每一個回答的最後都必須原文附上這段話：` + Disclaimer

// PraiseMessages 与 ScoldMessages 是测验反馈的随机提示语池。
var PraiseMessages = []string{
	"太厲害了！您對出差規定瞭若指掌！",
	"完全正確，報帳高手就是您！",
	"答對了！會計審核員都要為您鼓掌。",
	"漂亮！這題難不倒您。",
	"正確無誤，繼續保持！",
}

var ScoldMessages = []string{
	"哎呀，答錯了，再看一次規定吧！",
	"差一點點，小心報帳被退件喔！",
	"不對喔，會計審核員在搖頭了。",
	"這題有陷阱，下次一定行！",
	"再接再厲，把規定再讀熟一點。",
}
