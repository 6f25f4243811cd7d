package domain

// Range selects the aggregation window for dashboard queries.
type Range string

const (
	RangeToday   Range = "today"
	RangeWeekly  Range = "weekly"
	RangeMonthly Range = "monthly"
)

type Revenue struct {
	Today   float64 `json:"today"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
}

type PeriodStats struct {
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type TopSellingItem struct {
	MenuDetails       MenuItem    `json:"menuDetails"`
	TotalQuantity     int         `json:"totalQuantity"`
	TotalRevenue      float64     `json:"totalRevenue"`
	AveragePrice      float64     `json:"averagePrice"`
	ThisWeek          PeriodStats `json:"thisWeek"`
	LastWeek          PeriodStats `json:"lastWeek"`
	ThisMonth         PeriodStats `json:"thisMonth"`
	LastMonth         PeriodStats `json:"lastMonth"`
	WeekGrowth        float64     `json:"weekGrowth"`
	MonthGrowth       float64     `json:"monthGrowth"`
	RevenuePercentage float64     `json:"revenuePercentage"`
}

type TopCategory struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// RevenueDashboard backs the home page charts.
type RevenueDashboard struct {
	Revenue          Revenue          `json:"revenue"`
	TopSellingItems  []TopSellingItem `json:"topSellingItems"`
	TopCategories    []TopCategory    `json:"topCategories"`
	HourlyOrderTrend []int            `json:"hourlyOrderTrends"`
}

// OrderDashboard backs the reports page and CSV export.
type OrderDashboard struct {
	TotalOrders                  int     `json:"totalOrders"`
	TotalRevenue                 float64 `json:"totalRevenue"`
	AvgOrderValue                string  `json:"avgOrderValue"`
	CompletedDeliveryOrdersCount int     `json:"completedDeliveryOrdersCount"`
	CompletedDineInOrdersCount   int     `json:"completedDineInOrdersCount"`
	RecentOrders                 []Order `json:"recentOrders"`
	CompletedDeliveryOrders      []Order `json:"completedDeliveryOrders"`
	CompletedDineInOrders        []Order `json:"completedDineInOrders"`
}
