package config

// Card Dealing Scene 配置常量
// 时间单位为秒

const (
	// CardCount 场景开始时主牌堆中的卡牌数量
	CardCount = 144

	// DealInterval 发牌间隔
	DealInterval float64 = 1.0

	// BoostedDealInterval 加速后的发牌间隔
	BoostedDealInterval float64 = 0.01

	// FlightDuration 单张卡牌飞行时长
	FlightDuration float64 = 2.0

	// BoostedFlightDuration 加速后的飞行时长
	BoostedFlightDuration float64 = 0.2

	// CardWidth 卡牌尺寸（设计分辨率）
	CardWidth  float64 = 100
	CardHeight float64 = 140

	// CardStackOffset 每张牌在牌堆中的偏移，形成牌堆厚度
	CardStackOffset float64 = 0.5

	// MainPileX 主牌堆中心
	MainPileX float64 = 340
	MainPileY float64 = 400

	// TopStackX 上方牌堆中心
	TopStackX float64 = 900
	TopStackY float64 = 230

	// BottomStackX 下方牌堆中心
	BottomStackX float64 = 900
	BottomStackY float64 = 520

	// TopStackRotation 上方牌堆目标角度（度）
	TopStackRotation float64 = 90

	// BottomStackRotation 下方牌堆目标角度（度）
	BottomStackRotation float64 = 270

	// BoostButtonX 加速按钮
	BoostButtonX      float64 = 540
	BoostButtonY      float64 = 640
	BoostButtonWidth  float64 = 200
	BoostButtonHeight float64 = 50

	// CardCounterY 牌堆计数文字
	CardCounterY float64 = 80
)
