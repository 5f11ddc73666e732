package components

// ScaleComponent 存储实体级别的缩放因子
// 拖起的物品和代理会轻微放大
type ScaleComponent struct {
	// ScaleX X轴缩放因子（1.0 = 原始大小）
	ScaleX float64

	// ScaleY Y轴缩放因子（1.0 = 原始大小）
	ScaleY float64
}
