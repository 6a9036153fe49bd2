package extractor

// Log prefixes
const (
	LogPrefixExtract = "internal.intake.extractor.Extract"
)

// Failure kinds logged when an extraction degrades to an empty result.
const (
	FailureEncoding      = "encoding"
	FailureTransport     = "transport"
	FailureEmptyResponse = "empty_response"
	FailureMalformedJSON = "malformed_json"
	FailureNotArray      = "not_array"
	FailureInvalidInput  = "invalid_input"
)

// Prompts
const (
	promptTextPrefix  = "Văn bản: \"%s\"\n"
	promptAudioPrefix = "Hãy phiên âm đoạn âm thanh sau và sau đó phân tích văn bản đã phiên âm. "

	promptRules = `Phân tích văn bản sau để tạo ra MỘT DANH SÁCH các công việc. Trích xuất thông tin dưới dạng một mảng JSON.
Hôm nay là ngày %s.
Yêu cầu cho MỖI công việc trong văn bản:
1. "title": Tạo một tiêu đề ngắn gọn (dưới 10 từ).
2. "description": Sử dụng toàn bộ câu hoặc mệnh đề gốc liên quan đến công việc làm mô tả.
3. "datetime": Nếu có thời gian cụ thể (ví dụ: "ngày mai", "tối nay lúc 7 giờ", "thứ hai tuần sau"), trích xuất nó dưới dạng ISO 8601 (YYYY-MM-DDTHH:mm:ss). Nếu không có, trả về null.
4. "tags": Chọn tối đa 3 thẻ phù hợp nhất từ danh sách sau: %s. Nếu không có thẻ nào phù hợp, trả về một mảng trống.
Nếu văn bản chỉ chứa một công việc, hãy trả về một mảng có một đối tượng. Nếu không tìm thấy công việc nào, trả về một mảng trống.`

	referenceDateLayout = "2006-01-02"
)

// Generation settings
const (
	ExtractTemperature = 0.2
)
