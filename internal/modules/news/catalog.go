// Package news generates market events from a fixed template catalog and
// resolves their per-asset price impact.
package news

import (
	"math/rand"
	"time"

	"github.com/traderoyale/engine/internal/domain"
)

// Choice is an effect value with one or more alternatives. Multi-valued
// choices model news that hits different members of a group differently;
// resolution picks one at random.
type Choice []float64

// Pick returns one of the alternatives, or 0 for an empty choice.
func (c Choice) Pick(rng *rand.Rand) float64 {
	switch len(c) {
	case 0:
		return 0
	case 1:
		return c[0]
	}
	return c[rng.Intn(len(c))]
}

// First returns the primary alternative, used when checking whether an
// effect is meaningful without consuming randomness.
func (c Choice) First() float64 {
	if len(c) == 0 {
		return 0
	}
	return c[0]
}

func one(v float64) Choice { return Choice{v} }

// Effect is a price impact in percent plus how long it lasts, in seconds of
// game time.
type Effect struct {
	Change   Choice
	Duration Choice
}

// Applicable reports whether the effect actually moves prices.
func (e Effect) Applicable() bool {
	return e.Change.First() != 0 && e.Duration.First() > 0
}

// Template is a reusable news event. Impact resolution checks
// SpecificAssets first, then TickerEffects, then CategoryEffects.
type Template struct {
	ID        string
	Title     string
	Content   string
	Sentiment domain.Sentiment
	Magnitude float64

	CategoryEffects map[domain.AssetCategory]Effect
	TickerEffects   map[string]Effect
	SpecificAssets  map[string]float64
}

// BlackSwanTemplate is a market-wide shock with aftershock metadata.
type BlackSwanTemplate struct {
	Template
	CircuitBreaker        bool
	AftershockProbability float64
	AftershockDelay       time.Duration
}

var categoryTemplates = []Template{
	{
		ID:        "gdp-growth-exceeds",
		Title:     "GDP Growth Exceeds Expectations",
		Content:   "Quarterly GDP growth comes in at 4.2%, well above the 3.1% forecast.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.5,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(2.5), Duration: one(45)},
			domain.CategoryCommodity: {Change: Choice{0.8, -1.2}, Duration: Choice{45, 30}},
			domain.CategoryCrypto:    {Change: Choice{1.0, -0.5}, Duration: Choice{30, 20}},
		},
		SpecificAssets: map[string]float64{
			"stock-finance":    3.2,
			"stock-trade":      2.8,
			"commodity-copper": 1.5,
		},
	},
	{
		ID:        "unemployment-low",
		Title:     "Unemployment Rate Hits Multi-Year Low",
		Content:   "Labor market strengthens as unemployment falls to 3.4%, lowest in 50 years.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.6,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: Choice{1.7, 0.8}, Duration: Choice{30, 60}},
			domain.CategoryCommodity: {Change: Choice{-0.5, 1.3}, Duration: Choice{40, 35}},
			domain.CategoryCrypto:    {Change: Choice{-0.5, 1.2}, Duration: Choice{15, 45}},
		},
		SpecificAssets: map[string]float64{
			"stock-tech":       2.1,
			"stock-healthcare": 1.4,
		},
	},
	{
		ID:        "manufacturing-contracts",
		Title:     "Manufacturing PMI Contracts",
		Content:   "Manufacturing Purchasing Managers' Index falls below 50, indicating sector contraction.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.5,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(-1.5), Duration: one(40)},
			domain.CategoryCommodity: {Change: Choice{-0.8, -2.3}, Duration: Choice{30, 50}},
			domain.CategoryCrypto:    {Change: Choice{-0.7, 0}, Duration: Choice{25, 0}},
		},
		SpecificAssets: map[string]float64{
			"stock-trade":      -2.1,
			"commodity-copper": -2.5,
			"commodity-rare":   -1.9,
		},
	},
	{
		ID:        "inflation-surges",
		Title:     "Inflation Surges Past Expectations",
		Content:   "Consumer Price Index rises 6.8% year-over-year, exceeding forecasts of 6.2%.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.7,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: Choice{-2.0, 0.7}, Duration: Choice{30, 30}},
			domain.CategoryCommodity: {Change: Choice{2.4, 1.7}, Duration: Choice{60, 45}},
			domain.CategoryCrypto:    {Change: Choice{-1.5, 3.0}, Duration: Choice{20, 40}},
		},
		SpecificAssets: map[string]float64{
			"stock-finance":    -2.5,
			"commodity-gold":   3.2,
			"commodity-silver": 2.9,
		},
	},
	{
		ID:        "natural-gas-shortage",
		Title:     "Natural Gas Supply Shortage",
		Content:   "Cold weather forecasts trigger concerns about natural gas supplies.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.6,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(-0.8), Duration: one(35)},
			domain.CategoryCommodity: {Change: Choice{2.1, 4.5}, Duration: Choice{40, 30}},
			domain.CategoryCrypto:    {Change: one(-0.3), Duration: one(20)},
		},
		SpecificAssets: map[string]float64{
			"stock-energy":     -1.5,
			"commodity-natgas": 7.5,
			"commodity-oil":    2.1,
		},
	},
	{
		ID:        "renewable-milestone",
		Title:     "Renewable Energy Milestone Reached",
		Content:   "Solar and wind power reach 25% of global electricity generation for first time.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.5,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(1.3), Duration: one(40)},
			domain.CategoryCommodity: {Change: Choice{-2.2, -0.8}, Duration: Choice{50, 30}},
			domain.CategoryCrypto:    {Change: one(0.7), Duration: one(25)},
		},
		SpecificAssets: map[string]float64{
			"stock-energy":     2.8,
			"commodity-natgas": -3.2,
			"commodity-oil":    -2.5,
		},
	},
	{
		ID:        "crop-yields-down",
		Title:     "Global Crop Yields Down",
		Content:   "Extreme weather conditions reduce global harvest expectations by 8%.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.7,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(-0.9), Duration: one(30)},
			domain.CategoryCommodity: {Change: one(4.2), Duration: one(55)},
			domain.CategoryCrypto:    {Change: one(0), Duration: one(0)},
		},
		SpecificAssets: map[string]float64{
			"commodity-wheat": 6.5,
			"commodity-corn":  5.8,
		},
	},
	{
		ID:        "agricultural-tech-breakthrough",
		Title:     "Agricultural Technology Breakthrough",
		Content:   "New drought-resistant seed technology increases yields by 35%.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.6,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(1.2), Duration: one(35)},
			domain.CategoryCommodity: {Change: one(-2.8), Duration: one(45)},
			domain.CategoryCrypto:    {Change: one(0), Duration: one(0)},
		},
		SpecificAssets: map[string]float64{
			"stock-tech":      1.8,
			"commodity-wheat": -3.5,
			"commodity-corn":  -3.2,
		},
	},
	{
		ID:        "copper-demand-surge",
		Title:     "Industrial Copper Demand Surges",
		Content:   "Global manufacturing recovery drives copper prices to 3-year high.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.6,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(1.3), Duration: one(40)},
			domain.CategoryCommodity: {Change: one(2.5), Duration: one(50)},
			domain.CategoryCrypto:    {Change: one(0.5), Duration: one(20)},
		},
		SpecificAssets: map[string]float64{
			"stock-trade":      1.8,
			"commodity-copper": 5.3,
		},
	},
	{
		ID:        "rare-earth-shortage",
		Title:     "Rare Earth Metals Supply Concerns",
		Content:   "Export restrictions threaten global supply of critical rare earth elements.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.7,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(-1.5), Duration: one(45)},
			domain.CategoryCommodity: {Change: one(3.8), Duration: one(60)},
			domain.CategoryCrypto:    {Change: one(0.4), Duration: one(20)},
		},
		SpecificAssets: map[string]float64{
			"stock-tech":     -2.3,
			"commodity-rare": 8.5,
		},
	},
	{
		ID:        "fed-hikes-rates",
		Title:     "Federal Reserve Hikes Interest Rates",
		Content:   "Fed increases rates by 50 basis points, signals additional hikes ahead.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.8,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(-3.2), Duration: one(60)},
			domain.CategoryCommodity: {Change: Choice{-1.5, -1.8}, Duration: Choice{40, 45}},
			domain.CategoryCrypto:    {Change: one(-4.5), Duration: one(75)},
		},
		SpecificAssets: map[string]float64{
			"stock-finance":  -4.2,
			"commodity-gold": 2.1,
			"crypto-stable":  -0.5,
		},
	},
	{
		ID:        "chip-shortage-worsens",
		Title:     "Global Semiconductor Shortage Worsens",
		Content:   "Production delays expected to continue through next year for electronics manufacturers.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.7,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(-2.5), Duration: one(55)},
			domain.CategoryCommodity: {Change: one(2.1), Duration: one(40)},
			domain.CategoryCrypto:    {Change: one(-1.2), Duration: one(30)},
		},
		SpecificAssets: map[string]float64{
			"stock-tech":     -3.5,
			"commodity-rare": 4.2,
		},
	},
	{
		ID:        "cybersecurity-spending",
		Title:     "Cybersecurity Spending Surges",
		Content:   "Enterprises increase cybersecurity budgets by 40% after wave of attacks.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.6,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(2.1), Duration: one(45)},
			domain.CategoryCommodity: {Change: one(0), Duration: one(0)},
			domain.CategoryCrypto:    {Change: one(1.5), Duration: one(35)},
		},
		SpecificAssets: map[string]float64{
			"stock-cybersec": 7.5,
			"stock-tech":     3.2,
		},
	},
	{
		ID:        "port-congestion",
		Title:     "Global Port Congestion Worsens",
		Content:   "Wait times at major ports reach 3 weeks, disrupting global supply chains.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.7,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(-1.8), Duration: one(50)},
			domain.CategoryCommodity: {Change: one(2.4), Duration: one(45)},
			domain.CategoryCrypto:    {Change: one(0), Duration: one(0)},
		},
		SpecificAssets: map[string]float64{
			"stock-shipping":   -4.5,
			"stock-trade":      -3.2,
			"commodity-wheat":  3.5,
			"commodity-copper": 2.8,
		},
	},
	{
		ID:        "shipping-rates-drop",
		Title:     "Global Shipping Rates Plummet",
		Content:   "Container shipping costs fall 45% as supply chain pressures ease.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.6,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(2.2), Duration: one(40)},
			domain.CategoryCommodity: {Change: one(-1.5), Duration: one(35)},
			domain.CategoryCrypto:    {Change: one(0.8), Duration: one(25)},
		},
		SpecificAssets: map[string]float64{
			"stock-shipping": -3.8,
			"stock-trade":    3.5,
		},
	},
	{
		ID:        "bitcoin-adoption",
		Title:     "Major Payment Processor Adopts Bitcoin",
		Content:   "Global payment network enables Bitcoin transactions for 30 million merchants.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.8,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(0.9), Duration: one(30)},
			domain.CategoryCommodity: {Change: one(-0.7), Duration: one(25)},
			domain.CategoryCrypto:    {Change: one(5.5), Duration: one(60)},
		},
		SpecificAssets: map[string]float64{
			"crypto-btc": 8.5,
			"crypto-eth": 6.2,
			"crypto-sol": 5.8,
		},
	},
	{
		ID:        "eth-upgrade",
		Title:     "Ethereum Network Major Upgrade",
		Content:   "New protocol promises 100x throughput increase and 90% energy reduction.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.7,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(0.5), Duration: one(20)},
			domain.CategoryCommodity: {Change: one(0), Duration: one(0)},
			domain.CategoryCrypto:    {Change: one(4.2), Duration: one(55)},
		},
		SpecificAssets: map[string]float64{
			"crypto-eth": 9.5,
			"crypto-sol": -2.8,
		},
	},
	{
		ID:        "sol-outage",
		Title:     "Solana Network Experiences Outage",
		Content:   "Major blockchain network down for 6 hours due to congestion issues.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.6,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(0), Duration: one(0)},
			domain.CategoryCommodity: {Change: one(0), Duration: one(0)},
			domain.CategoryCrypto:    {Change: one(-3.5), Duration: one(40)},
		},
		SpecificAssets: map[string]float64{
			"crypto-sol": -12.5,
			"crypto-eth": 2.8,
		},
	},
	{
		ID:        "blockchain-breakthrough",
		Title:     "Blockchain Technology Breakthrough",
		Content:   "New blockchain protocol achieves 100,000 transactions per second in production environment.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.8,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(0.8), Duration: one(30)},
			domain.CategoryCommodity: {Change: one(0), Duration: one(0)},
			domain.CategoryCrypto:    {Change: one(5.2), Duration: one(70)},
		},
		SpecificAssets: map[string]float64{
			"crypto-blockchain": 7.5,
			"crypto-defi":       6.2,
			"crypto-stable":     0.5,
		},
	},
	{
		ID:        "defi-security-breach",
		Title:     "Major DeFi Protocol Security Breach",
		Content:   "Hackers exploit vulnerability in popular DeFi platform, stealing assets worth $320 million.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.9,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(-0.5), Duration: one(20)},
			domain.CategoryCommodity: {Change: one(0.3), Duration: one(15)},
			domain.CategoryCrypto:    {Change: one(-6.5), Duration: one(55)},
		},
		SpecificAssets: map[string]float64{
			"crypto-defi":       -12.0,
			"crypto-blockchain": -8.5,
			"crypto-privacy":    -5.0,
			"crypto-stable":     -0.8,
		},
	},
	{
		ID:        "crypto-regulation",
		Title:     "New Cryptocurrency Regulation Framework Announced",
		Content:   "Government introduces comprehensive regulation for cryptocurrency markets and exchanges.",
		Sentiment: domain.SentimentNeutral,
		Magnitude: 0.7,
		CategoryEffects: map[domain.AssetCategory]Effect{
			domain.CategoryStock:     {Change: one(0.4), Duration: one(25)},
			domain.CategoryCommodity: {Change: one(0), Duration: one(0)},
			domain.CategoryCrypto:    {Change: Choice{-4.2, 3.5}, Duration: Choice{45, 60}},
		},
		SpecificAssets: map[string]float64{
			"crypto-stable":  2.5,
			"crypto-privacy": -7.8,
			"crypto-defi":    -5.2,
		},
	},
}

var tickerTemplates = []Template{
	{
		ID:        "gdp-growth-exceeds-ticker",
		Title:     "GDP Growth Exceeds Expectations",
		Content:   "Quarterly GDP growth comes in at 4.2%, well above the 3.1% forecast.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.5,
		TickerEffects: map[string]Effect{
			"TECH": {Change: one(3.2), Duration: one(45)},
			"CYSC": {Change: one(2.8), Duration: one(40)},
			"FINX": {Change: one(3.5), Duration: one(50)},
			"TRDE": {Change: one(2.9), Duration: one(45)},
			"GOLD": {Change: one(-1.2), Duration: one(30)},
			"OIL":  {Change: one(1.8), Duration: one(60)},
			"BTC":  {Change: one(1.5), Duration: one(35)},
			"ETH":  {Change: one(2.0), Duration: one(40)},
		},
	},
	{
		ID:        "inflation-spike",
		Title:     "Inflation Spikes to 7-Year High",
		Content:   "Consumer Price Index shows inflation at 6.8%, highest since 2015.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.7,
		TickerEffects: map[string]Effect{
			"FINX": {Change: one(-3.2), Duration: one(55)},
			"GOLD": {Change: one(4.5), Duration: one(70)},
			"SLVR": {Change: one(3.8), Duration: one(65)},
			"WHET": {Change: one(2.5), Duration: one(45)},
			"CORN": {Change: one(2.3), Duration: one(45)},
			"BTC":  {Change: one(2.8), Duration: one(50)},
			"STBL": {Change: one(-0.8), Duration: one(40)},
		},
	},
	{
		ID:        "unemployment-drops",
		Title:     "Unemployment Rate Hits Historic Low",
		Content:   "National unemployment falls to 3.2%, lowest in over 50 years.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.6,
		TickerEffects: map[string]Effect{
			"TECH": {Change: one(2.1), Duration: one(40)},
			"FINX": {Change: one(3.4), Duration: one(50)},
			"TRDE": {Change: one(2.6), Duration: one(45)},
			"HEAL": {Change: one(1.8), Duration: one(35)},
			"RARE": {Change: one(1.5), Duration: one(30)},
			"ETH":  {Change: one(1.2), Duration: one(25)},
		},
	},
	{
		ID:        "trade-war-escalation",
		Title:     "Trade War Escalates Between Major Economies",
		Content:   "New tariffs imposed on $200 billion worth of goods between rival nations.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.8,
		TickerEffects: map[string]Effect{
			"TRDE": {Change: one(-4.5), Duration: one(65)},
			"SHIP": {Change: one(-3.8), Duration: one(60)},
			"TECH": {Change: one(-2.9), Duration: one(50)},
			"RARE": {Change: one(3.2), Duration: one(55)},
			"COPR": {Change: one(-2.1), Duration: one(45)},
			"BTC":  {Change: one(2.4), Duration: one(40)},
		},
	},
	{
		ID:        "peace-treaty-signed",
		Title:     "Historic Peace Treaty Signed in Conflict Zone",
		Content:   "After decades of tension, rival nations agree to comprehensive peace agreement.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.7,
		TickerEffects: map[string]Effect{
			"FINX": {Change: one(2.8), Duration: one(50)},
			"TRDE": {Change: one(3.5), Duration: one(55)},
			"SHIP": {Change: one(2.6), Duration: one(45)},
			"OIL":  {Change: one(-3.2), Duration: one(60)},
			"NGAS": {Change: one(-2.5), Duration: one(50)},
			"GOLD": {Change: one(-1.8), Duration: one(40)},
		},
	},
	{
		ID:        "major-hurricane",
		Title:     "Category 5 Hurricane Devastates Coastal Region",
		Content:   "Massive storm causes billions in damage to critical infrastructure and shipping hubs.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.9,
		TickerEffects: map[string]Effect{
			"SHIP": {Change: one(-5.2), Duration: one(70)},
			"ENRG": {Change: one(3.8), Duration: one(60)},
			"OIL":  {Change: one(4.5), Duration: one(65)},
			"NGAS": {Change: one(3.9), Duration: one(60)},
			"HEAL": {Change: one(2.4), Duration: one(45)},
			"FINX": {Change: one(-1.8), Duration: one(40)},
		},
	},
	{
		ID:        "quantum-computing-breakthrough",
		Title:     "Major Quantum Computing Breakthrough Announced",
		Content:   "Scientists achieve quantum supremacy with new 1000-qubit processor.",
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.8,
		TickerEffects: map[string]Effect{
			"TECH": {Change: one(7.5), Duration: one(80)},
			"CYSC": {Change: one(4.2), Duration: one(65)},
			"RARE": {Change: one(3.8), Duration: one(60)},
			"BTC":  {Change: one(-2.5), Duration: one(45)},
			"ETH":  {Change: one(3.2), Duration: one(55)},
			"SOL":  {Change: one(4.0), Duration: one(60)},
		},
	},
	{
		ID:        "opec-production-cut",
		Title:     "OPEC Announces Major Production Cut",
		Content:   "Oil cartel agrees to reduce output by 2 million barrels per day.",
		Sentiment: domain.SentimentMixed,
		Magnitude: 0.7,
		TickerEffects: map[string]Effect{
			"OIL":  {Change: one(8.5), Duration: one(85)},
			"NGAS": {Change: one(3.2), Duration: one(55)},
			"ENRG": {Change: one(5.8), Duration: one(75)},
			"SHIP": {Change: one(-2.1), Duration: one(45)},
			"TRDE": {Change: one(-1.8), Duration: one(40)},
		},
	},
	{
		ID:        "central-bank-rate-hike",
		Title:     "Central Bank Raises Interest Rates by 75 Basis Points",
		Content:   "Surprise move signals aggressive stance against inflation pressures.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.7,
		TickerEffects: map[string]Effect{
			"FINX": {Change: one(-4.2), Duration: one(65)},
			"TECH": {Change: one(-3.8), Duration: one(60)},
			"GOLD": {Change: one(2.5), Duration: one(50)},
			"BTC":  {Change: one(-5.5), Duration: one(70)},
			"ETH":  {Change: one(-4.8), Duration: one(65)},
			"STBL": {Change: one(0.8), Duration: one(40)},
		},
	},
	{
		ID:        "pandemic-resurgence",
		Title:     "New Virus Variant Triggers Global Health Emergency",
		Content:   "WHO declares emergency as highly contagious variant spreads to 30+ countries.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.9,
		TickerEffects: map[string]Effect{
			"HEAL": {Change: one(6.5), Duration: one(80)},
			"SHIP": {Change: one(-7.2), Duration: one(85)},
			"TRDE": {Change: one(-5.8), Duration: one(75)},
			"OIL":  {Change: one(-6.5), Duration: one(80)},
			"GOLD": {Change: one(4.2), Duration: one(65)},
			"BTC":  {Change: one(-3.5), Duration: one(60)},
		},
	},
	{
		ID:        "celebrity-crypto-endorsement",
		Title:     "A-List Actor Launches 'MoonRocket' Cryptocurrency",
		Content:   "Superstar claims new crypto will 'definitely reach Mars before Elon's rockets do'.",
		Sentiment: domain.SentimentMixed,
		Magnitude: 0.5,
		TickerEffects: map[string]Effect{
			"BTC":  {Change: one(-2.5), Duration: one(45)},
			"ETH":  {Change: one(-1.8), Duration: one(40)},
			"SOL":  {Change: one(-3.2), Duration: one(55)},
			"STBL": {Change: one(0.5), Duration: one(30)},
			"TECH": {Change: one(0.8), Duration: one(25)},
		},
	},
	{
		ID:        "ufo-confirmation",
		Title:     "Government Confirms Extraterrestrial Technology Recovery",
		Content:   "Declassified documents reveal decades of alien tech reverse-engineering programs.",
		Sentiment: domain.SentimentMixed,
		Magnitude: 0.9,
		TickerEffects: map[string]Effect{
			"TECH": {Change: one(12.5), Duration: one(100)},
			"RARE": {Change: one(8.5), Duration: one(90)},
			"CYSC": {Change: one(6.8), Duration: one(80)},
			"OIL":  {Change: one(-7.5), Duration: one(85)},
			"NGAS": {Change: one(-6.8), Duration: one(80)},
			"BTC":  {Change: one(-3.5), Duration: one(60)},
			"ETH":  {Change: one(4.5), Duration: one(65)},
		},
	},
	{
		ID:        "chip-shortage-worsens-ticker",
		Title:     "Global Semiconductor Shortage Reaches Critical Level",
		Content:   "Wait times for critical chips extend to 18 months, halting multiple industries.",
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.8,
		TickerEffects: map[string]Effect{
			"TECH": {Change: one(-5.8), Duration: one(75)},
			"RARE": {Change: one(6.5), Duration: one(80)},
			"COPR": {Change: one(4.8), Duration: one(70)},
			"SHIP": {Change: one(-3.5), Duration: one(60)},
			"TRDE": {Change: one(-4.2), Duration: one(65)},
		},
	},
}

var blackSwanTemplates = []BlackSwanTemplate{
	{
		Template: Template{
			ID:        "global-financial-crisis",
			Title:     "BREAKING: Global Financial Crisis Unfolds",
			Content:   "Major banks across multiple continents report insolvency as markets crash worldwide.",
			Sentiment: domain.SentimentNegative,
			Magnitude: 1.0,
			TickerEffects: map[string]Effect{
				"TECH": {Change: one(-12.0), Duration: one(120)},
				"CYSC": {Change: one(-8.5), Duration: one(100)},
				"FINX": {Change: one(-20.0), Duration: one(150)},
				"SHIP": {Change: one(-15.0), Duration: one(130)},
				"TRDE": {Change: one(-14.0), Duration: one(120)},
				"GOLD": {Change: one(8.0), Duration: one(120)},
				"OIL":  {Change: one(-10.0), Duration: one(110)},
				"BTC":  {Change: one(-18.0), Duration: one(100)},
				"ETH":  {Change: one(-16.0), Duration: one(95)},
			},
		},
		CircuitBreaker:        true,
		AftershockProbability: 0.8,
		AftershockDelay:       20 * time.Second,
	},
	{
		Template: Template{
			ID:        "unprecedented-tech-revolution",
			Title:     "BREAKTHROUGH: Revolutionary Technology Changes Everything",
			Content:   "A groundbreaking technology immediately transforms global industries and market dynamics.",
			Sentiment: domain.SentimentPositive,
			Magnitude: 0.95,
			TickerEffects: map[string]Effect{
				"TECH": {Change: one(18.0), Duration: one(140)},
				"CYSC": {Change: one(15.0), Duration: one(130)},
				"ENRG": {Change: one(-10.0), Duration: one(100)},
				"RARE": {Change: one(14.0), Duration: one(120)},
				"OIL":  {Change: one(-12.0), Duration: one(110)},
				"NGAS": {Change: one(-8.0), Duration: one(90)},
				"ETH":  {Change: one(10.0), Duration: one(100)},
				"SOL":  {Change: one(12.0), Duration: one(110)},
			},
		},
		CircuitBreaker:        true,
		AftershockProbability: 0.7,
		AftershockDelay:       25 * time.Second,
	},
	{
		Template: Template{
			ID:        "global-pandemic",
			Title:     "ALERT: Global Pandemic Declared",
			Content:   "WHO declares global emergency as new virus spreads rapidly with high mortality rate.",
			Sentiment: domain.SentimentNegative,
			Magnitude: 0.98,
			TickerEffects: map[string]Effect{
				"HEAL": {Change: one(15.0), Duration: one(130)},
				"TECH": {Change: one(-8.0), Duration: one(100)},
				"SHIP": {Change: one(-20.0), Duration: one(150)},
				"TRDE": {Change: one(-18.0), Duration: one(140)},
				"OIL":  {Change: one(-22.0), Duration: one(160)},
				"GOLD": {Change: one(10.0), Duration: one(120)},
				"WHET": {Change: one(8.0), Duration: one(110)},
				"CORN": {Change: one(6.0), Duration: one(100)},
			},
		},
		CircuitBreaker:        true,
		AftershockProbability: 0.9,
		AftershockDelay:       15 * time.Second,
	},
	{
		Template: Template{
			ID:        "currency-collapse",
			Title:     "CRISIS: Major World Currency Collapses",
			Content:   "One of the world's major currencies loses 70% of its value in 24 hours.",
			Sentiment: domain.SentimentNegative,
			Magnitude: 0.95,
			TickerEffects: map[string]Effect{
				"FINX": {Change: one(-18.0), Duration: one(140)},
				"GOLD": {Change: one(25.0), Duration: one(160)},
				"SLVR": {Change: one(20.0), Duration: one(150)},
				"BTC":  {Change: one(30.0), Duration: one(170)},
				"ETH":  {Change: one(25.0), Duration: one(160)},
				"STBL": {Change: one(-5.0), Duration: one(80)},
			},
		},
		CircuitBreaker:        true,
		AftershockProbability: 0.7,
		AftershockDelay:       20 * time.Second,
	},
	{
		Template: Template{
			ID:        "global-peace-breakthrough",
			Title:     "HISTORIC: World Peace Agreement Signed",
			Content:   "After decades of conflict, all major global powers sign comprehensive peace accord.",
			Sentiment: domain.SentimentPositive,
			Magnitude: 0.9,
			TickerEffects: map[string]Effect{
				"FINX": {Change: one(12.0), Duration: one(130)},
				"TECH": {Change: one(10.0), Duration: one(120)},
				"TRDE": {Change: one(15.0), Duration: one(140)},
				"SHIP": {Change: one(14.0), Duration: one(130)},
				"OIL":  {Change: one(-8.0), Duration: one(100)},
				"RARE": {Change: one(-5.0), Duration: one(90)},
			},
		},
		CircuitBreaker:        false,
		AftershockProbability: 0.6,
		AftershockDelay:       30 * time.Second,
	},
}
