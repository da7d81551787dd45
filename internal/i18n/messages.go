package i18n

// Message keys.
const (
	KeyAppTitle              = "appTitle"
	KeyRemainingAmount       = "remainingAmount"
	KeyMonthlyCosts          = "monthlyCosts"
	KeyAddCost               = "addCost"
	KeyRemoveCost            = "removeCost"
	KeyCostItem              = "costItem"
	KeyCostNamePlaceholder   = "costNamePlaceholder"
	KeyCostDescPlaceholder   = "costDescriptionPlaceholder"
	KeyTotalMonthlyCost      = "totalMonthlyCost"
	KeyTotalMonthlyExpense   = "totalMonthlyExpense"
	KeyCostsBreakdown        = "costsBreakdown"
	KeyResult                = "result"
	KeyMonthsLeft            = "monthsLeft"
	KeyMonthsLeftDecimal     = "monthsLeftDecimal"
	KeyDaysLeft              = "daysLeft"
	KeyYearsLeft             = "yearsLeft"
	KeyInsufficientFunds     = "insufficientFunds"
	KeyInputPlaceholder      = "inputPlaceholder"
	KeyInputError            = "inputError"
	KeyReset                 = "reset"
	KeySummary               = "summary"
	KeyTotalAmount           = "totalAmount"
	KeySurvivalTime          = "survivalTime"
	KeyCurrency              = "currency"
	KeyCostCharts            = "costCharts"
	KeyBarChart              = "barChart"
	KeyPieChart              = "pieChart"
	KeyCostDistribution      = "costDistribution"
	KeyCostProportion        = "costProportion"
	KeyTotalCosts            = "totalCosts"
	KeyCostItems             = "costItems"
	KeyAverageCost           = "averageCost"
	KeyHighestCost           = "highestCost"
	KeyLowestCost            = "lowestCost"
	KeyCostRange             = "costRange"
	KeyNoCostData            = "noCostData"
	KeyAddCostsToViewCharts  = "addCostsToViewCharts"
	KeyMonths                = "months"
	KeyDays                  = "days"
	KeyYears                 = "years"
	KeyTimeUnit              = "timeUnit"
	KeyEnterAmountsForResult = "enterAmountsForResult"
	KeyScenarios             = "scenarios"
	KeyNoScenarios           = "noScenarios"
	KeyScenarioName          = "scenarioName"
	KeyScenarioSaved         = "scenarioSaved"
	KeyScenarioLoaded        = "scenarioLoaded"
	KeyScenarioDeleted       = "scenarioDeleted"
	KeySettings              = "settings"
	KeyCalculator            = "calculator"
	KeyLanguage              = "language"
	KeyTheme                 = "theme"
	KeyDefaultChart          = "defaultChart"
	KeySaved                 = "saved"
	KeyUpdated               = "updated"
	KeyDefaultUnit           = "defaultUnit"
	KeyAuto                  = "auto"
	KeyLoading               = "loading"
	KeyStoreUnavailable      = "storeUnavailable"
	KeySaveScenario          = "saveScenario"
	KeyEmptyName             = "emptyName"
	KeyServerAddr            = "serverAddr"
	KeyDataDir               = "dataDir"
	KeySaveFailed            = "saveFailed"
)

// catalogs is the complete, fixed message set. zh is the base locale.
var catalogs = map[Locale]map[string]string{
	ZH: {
		KeyAppTitle:              "预算管理器",
		KeyRemainingAmount:       "剩余金额",
		KeyMonthlyCosts:          "每月成本项目",
		KeyAddCost:               "添加成本",
		KeyRemoveCost:            "删除成本",
		KeyCostItem:              "成本项目",
		KeyCostNamePlaceholder:   "成本名称（如：房租、餐饮）",
		KeyCostDescPlaceholder:   "成本描述（可选）",
		KeyTotalMonthlyCost:      "总每月成本",
		KeyTotalMonthlyExpense:   "总月支出",
		KeyCostsBreakdown:        "成本明细",
		KeyResult:                "结果",
		KeyMonthsLeft:            "您还能坚持 {{months}} 个月",
		KeyMonthsLeftDecimal:     "您还能坚持 {{months}} 个月",
		KeyDaysLeft:              "您还能坚持 {{days}} 天",
		KeyYearsLeft:             "您还能坚持 {{years}} 年",
		KeyInsufficientFunds:     "资金不足，无法坚持一个月",
		KeyInputPlaceholder:      "请输入金额",
		KeyInputError:            "请输入有效的金额",
		KeyReset:                 "重置",
		KeySummary:               "预算摘要",
		KeyTotalAmount:           "总金额",
		KeySurvivalTime:          "生存时间",
		KeyCurrency:              "¥",
		KeyCostCharts:            "成本图表",
		KeyBarChart:              "柱状图",
		KeyPieChart:              "饼图",
		KeyCostDistribution:      "成本分布",
		KeyCostProportion:        "成本占比",
		KeyTotalCosts:            "总成本",
		KeyCostItems:             "成本项目数",
		KeyAverageCost:           "平均成本",
		KeyHighestCost:           "最高成本",
		KeyLowestCost:            "最低成本",
		KeyCostRange:             "成本范围",
		KeyNoCostData:            "暂无成本数据",
		KeyAddCostsToViewCharts:  "请添加成本项目以查看图表",
		KeyMonths:                "个月",
		KeyDays:                  "天",
		KeyYears:                 "年",
		KeyTimeUnit:              "时间单位",
		KeyEnterAmountsForResult: "输入剩余金额和至少一项有效成本以查看结果",
		KeyScenarios:             "方案",
		KeyNoScenarios:           "暂无已保存的方案",
		KeyScenarioName:          "方案名称",
		KeyScenarioSaved:         "方案已保存：{{name}}",
		KeyScenarioLoaded:        "已载入方案：{{name}}",
		KeyScenarioDeleted:       "已删除方案：{{name}}",
		KeySettings:              "设置",
		KeyCalculator:            "计算器",
		KeyLanguage:              "语言",
		KeyTheme:                 "主题",
		KeyDefaultChart:          "默认图表",
		KeySaved:                 "已保存！",
		KeyUpdated:               "更新于",
		KeyDefaultUnit:           "默认单位",
		KeyAuto:                  "自动",
		KeyLoading:               "加载中…",
		KeyStoreUnavailable:      "场景存储不可用",
		KeySaveScenario:          "保存场景",
		KeyEmptyName:             "请输入场景名称",
		KeyServerAddr:            "服务地址",
		KeyDataDir:               "数据目录",
		KeySaveFailed:            "保存失败：{{error}}",
	},
	EN: {
		KeyAppTitle:              "Budget Manager",
		KeyRemainingAmount:       "Remaining Amount",
		KeyMonthlyCosts:          "Monthly Cost Items",
		KeyAddCost:               "Add Cost",
		KeyRemoveCost:            "Remove Cost",
		KeyCostItem:              "Cost Item",
		KeyCostNamePlaceholder:   "Cost name (e.g., Rent, Food)",
		KeyCostDescPlaceholder:   "Cost description (optional)",
		KeyTotalMonthlyCost:      "Total Monthly Cost",
		KeyTotalMonthlyExpense:   "Total Monthly Expense",
		KeyCostsBreakdown:        "Costs Breakdown",
		KeyResult:                "Result",
		KeyMonthsLeft:            "You can survive for {{months}} months",
		KeyMonthsLeftDecimal:     "You can survive for {{months}} months",
		KeyDaysLeft:              "You can survive for {{days}} days",
		KeyYearsLeft:             "You can survive for {{years}} years",
		KeyInsufficientFunds:     "Insufficient funds to survive one month",
		KeyInputPlaceholder:      "Enter amount",
		KeyInputError:            "Please enter a valid amount",
		KeyReset:                 "Reset",
		KeySummary:               "Budget Summary",
		KeyTotalAmount:           "Total Amount",
		KeySurvivalTime:          "Survival Time",
		KeyCurrency:              "$",
		KeyCostCharts:            "Cost Charts",
		KeyBarChart:              "Bar Chart",
		KeyPieChart:              "Pie Chart",
		KeyCostDistribution:      "Cost Distribution",
		KeyCostProportion:        "Cost Proportion",
		KeyTotalCosts:            "Total Costs",
		KeyCostItems:             "Cost Items",
		KeyAverageCost:           "Average Cost",
		KeyHighestCost:           "Highest Cost",
		KeyLowestCost:            "Lowest Cost",
		KeyCostRange:             "Cost Range",
		KeyNoCostData:            "No cost data available",
		KeyAddCostsToViewCharts:  "Add cost items to view charts",
		KeyMonths:                "months",
		KeyDays:                  "days",
		KeyYears:                 "years",
		KeyTimeUnit:              "Time Unit",
		KeyEnterAmountsForResult: "Enter a remaining amount and at least one valid cost to see the result",
		KeyScenarios:             "Scenarios",
		KeyNoScenarios:           "No saved scenarios",
		KeyScenarioName:          "Scenario name",
		KeyScenarioSaved:         "Saved scenario: {{name}}",
		KeyScenarioLoaded:        "Loaded scenario: {{name}}",
		KeyScenarioDeleted:       "Deleted scenario: {{name}}",
		KeySettings:              "Settings",
		KeyCalculator:            "Calculator",
		KeyLanguage:              "Language",
		KeyTheme:                 "Theme",
		KeyDefaultChart:          "Default Chart",
		KeySaved:                 "Saved!",
		KeyUpdated:               "Updated",
		KeyDefaultUnit:           "Default Unit",
		KeyAuto:                  "Auto",
		KeyLoading:               "Loading…",
		KeyStoreUnavailable:      "Scenario store unavailable",
		KeySaveScenario:          "Save Scenario",
		KeyEmptyName:             "Please enter a scenario name",
		KeyServerAddr:            "Server Address",
		KeyDataDir:               "Data Directory",
		KeySaveFailed:            "Save failed: {{error}}",
	},
}
