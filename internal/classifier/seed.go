package classifier

import "github.com/Veraticus/thuchi/internal/model"

// Corpus holds training examples per direction.
type Corpus map[model.Direction][]Example

// SeedCorpus returns the bundled hand-written examples used whenever a
// direction is trained.
func SeedCorpus() Corpus {
	return Corpus{
		model.DirectionExpense: append([]Example(nil), expenseSeed...),
		model.DirectionIncome:  append([]Example(nil), incomeSeed...),
	}
}

var expenseSeed = []Example{
	{"cơm sườn trưa", "Ăn uống"},
	{"mua ly trà sữa", "Ăn uống"},
	{"cà phê với bạn", "Ăn uống"},
	{"ăn trưa văn phòng", "Ăn uống"},
	{"ăn sáng phở bò", "Ăn uống"},
	{"bún chả ăn tối", "Ăn uống"},
	{"chợ rau thịt cá", "Ăn uống"},

	{"đổ xăng xe máy", "Đi lại"},
	{"vé xe bus tháng", "Đi lại"},
	{"tiền grab đi làm", "Đi lại"},
	{"gửi xe chung cư", "Đi lại"},
	{"sửa xe máy", "Đi lại"},
	{"taxi ra sân bay", "Đi lại"},

	{"mua áo sơ mi", "Mua sắm"},
	{"đặt hàng shopee", "Mua sắm"},
	{"mua một đôi giày mới", "Mua sắm"},
	{"quần jean lazada", "Mua sắm"},
	{"mỹ phẩm tiki", "Mua sắm"},

	{"thanh toán tiền điện", "Hóa đơn"},
	{"đóng tiền net FPT", "Hóa đơn"},
	{"tiền nhà tháng 8", "Hóa đơn"},
	{"tiền nước sinh hoạt", "Hóa đơn"},
	{"cước điện thoại viettel", "Hóa đơn"},

	{"vé xem phim cgv", "Giải trí"},
	{"karaoke cuối tuần", "Giải trí"},
	{"netflix hàng tháng", "Giải trí"},
	{"du lịch đà lạt", "Giải trí"},

	{"mua thuốc cảm", "Sức khỏe"},
	{"khám răng nha khoa", "Sức khỏe"},
	{"bảo hiểm y tế", "Sức khỏe"},

	{"học phí tiếng anh", "Giáo dục"},
	{"sách lập trình", "Giáo dục"},
}

var incomeSeed = []Example{
	{"lương tháng 8", "Lương"},
	{"nhận lương công ty", "Lương"},
	{"lương part time", "Lương"},
	{"tiền lương cuối tháng", "Lương"},

	{"thưởng dự án", "Thưởng"},
	{"được sếp thưởng", "Thưởng"},
	{"thưởng tết", "Thưởng"},
	{"bonus quý", "Thưởng"},

	{"tiền cho thuê xe", "Thu nhập phụ"},
	{"cho thuê nhà", "Thu nhập phụ"},
	{"bán đồ cũ online", "Thu nhập phụ"},
	{"freelance thiết kế", "Thu nhập phụ"},
	{"dạy kèm buổi tối", "Thu nhập phụ"},

	{"lãi ngân hàng", "Đầu tư"},
	{"cổ tức chứng khoán", "Đầu tư"},
	{"lãi tiết kiệm", "Đầu tư"},

	{"mẹ cho tiền", "Quà tặng"},
	{"lì xì đầu năm", "Quà tặng"},
}
