package models

const (
	TableBlockRegex   = `(?:\|[^\n]*\|\n)+`
	SeparatorRowRegex = `^\|\s*[-:]+\s*\|`

	// numbered section heading, formatted with the number and the quoted label
	SuggestionHeadingRegex = `(?mi)^[ \t#*_>]*%d\.[ \t*_]*%s[^\n]*$`
	// any line opening with one of the given numbers, whatever follows
	SectionEndRegex = `(?m)^[ \t#*_>]*(?:%s)\.`
)

const (
	// MinTables is the number of tables a matrix response must yield before a
	// workbook is produced.
	MinTables = 4

	NotAvailable      = "Not available"
	SuggestionsFailed = "Error extracting suggestions."
	IncorrectFormat   = "Unable to generate Excel file. Incorrect format."
	MissingFieldsMsg  = "Please fill in all fields to generate the matrix."

	AutomaticFilename = "Hoshin_Kanri_Matrix.xlsx"
	ManualFilename    = "Manual_Hoshin_Kanri_Matrix.xlsx"
	XLSXContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	SuggestionsSheet = "Suggestions"
)

// sheet names for the generated workbook, in table order
var AutomaticSheets = []string{
	"Strategic-Annual",
	"Annual-Priorities",
	"KPIs-Priorities",
	"Priorities-Responsibilities",
}

// sheet names for the manual workbook, in matrix order
var ManualSheets = []string{
	"Strategic-Annual",
	"Annual-Priorities",
	"Priorities-KPIs",
	"Priorities-Responsibilities",
}

// SuggestionCategories are the numbered sections requested from the model.
var SuggestionCategories = []string{
	"Annual Objectives",
	"Improvement Priorities",
	"KPIs",
}

var (
	MatrixPromptTemplate = `
You are an expert in strategic planning. Create a Hoshin Kanri matrix in the form of several tables. Here are the inputs:

Strategic Objective:
%s

Annual Objectives:
%s

Improvement Priorities:
%s

KPIs:
%s

Responsibilities:
%s

Expected table structure:

1. **Table 1**:
   - Rows: Strategic Objectives
   - Columns: Annual Objectives
   - Cells: 'O' = primary relation, 'X' = secondary relation, empty = no relation

2. **Table 2**:
   - Rows: Annual Objectives
   - Columns: Improvement Priorities
   - Cells: 'O', 'X' or empty

3. **Table 3**:
   - Rows: Improvement Priorities
   - Columns: KPIs
   - Cells: 'O', 'X' or empty

4. **Table 4**:
   - Rows: Improvement Priorities
   - Columns: Responsible Persons

Generate these tables with clear headers and good structure.
`

	SuggestionsPromptTemplate = `
Here are the defined elements in the strategic plan:

- Strategic Objective: %s
- Annual Objectives: %s
- Improvement Priorities: %s
- KPIs: %s

Give concrete and well-argued improvement suggestions for each of the following:
1. Annual Objectives: relevance, clarity, strategic alignment.
2. Improvement Priorities: operational impact, feasibility.
3. KPIs: accuracy, relevance, usefulness for monitoring.

Do not start each point with generic intros. Provide focused bullet-point recommendations.
`

	Legend = `> **Legend**:
>
> Empty cells mean no relation.
> **'O'** means a **primary relation**, **'X'** means a **secondary relation**.
`
)
