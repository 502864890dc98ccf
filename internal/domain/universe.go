package domain

// StartingAssets returns the 19-instrument universe every game starts with.
// Prices are the opening quotes; volatility is the per-asset calibration
// factor feeding the pricing model.
func StartingAssets() []Asset {
	return []Asset{
		// Stocks
		{ID: "stock-tech", Name: "Tech Innovations", Ticker: "TECH", Category: CategoryStock, Price: 100, PreviousPrice: 100, Volatility: 0.4, Description: "A blend of top technology companies"},
		{ID: "stock-cybersec", Name: "CyberShield", Ticker: "CYSC", Category: CategoryStock, Price: 65, PreviousPrice: 65, Volatility: 0.55, Description: "Leading cybersecurity firm specializing in enterprise protection"},
		{ID: "stock-energy", Name: "Energy Sector ETF", Ticker: "ENRG", Category: CategoryStock, Price: 75, PreviousPrice: 75, Volatility: 0.5, Description: "Major energy producers and infrastructure companies"},
		{ID: "stock-finance", Name: "Financial Index", Ticker: "FINX", Category: CategoryStock, Price: 120, PreviousPrice: 120, Volatility: 0.35, Description: "Banking and financial services sector"},
		{ID: "stock-shipping", Name: "Global Shipping", Ticker: "SHIP", Category: CategoryStock, Price: 45, PreviousPrice: 45, Volatility: 0.6, Description: "International maritime shipping and logistics"},
		{ID: "stock-trade", Name: "Trade Conglomerate", Ticker: "TRDE", Category: CategoryStock, Price: 110, PreviousPrice: 110, Volatility: 0.4, Description: "Multinational import/export and global trade facilitator"},
		{ID: "stock-healthcare", Name: "Healthcare Giants", Ticker: "HEAL", Category: CategoryStock, Price: 90, PreviousPrice: 90, Volatility: 0.3, Description: "Healthcare, pharmaceutical, and biotech companies"},

		// Commodities
		{ID: "commodity-gold", Name: "Gold", Ticker: "GOLD", Category: CategoryCommodity, Price: 1800, PreviousPrice: 1800, Volatility: 0.2, Description: "Precious metal, traditionally a safe haven"},
		{ID: "commodity-oil", Name: "Crude Oil", Ticker: "OIL", Category: CategoryCommodity, Price: 75, PreviousPrice: 75, Volatility: 0.6, Description: "Global commodity with high geopolitical sensitivity"},
		{ID: "commodity-natgas", Name: "Natural Gas", Ticker: "NGAS", Category: CategoryCommodity, Price: 3.8, PreviousPrice: 3.8, Volatility: 0.7, Description: "Essential energy source with distinct seasonal patterns"},
		{ID: "commodity-silver", Name: "Silver", Ticker: "SLVR", Category: CategoryCommodity, Price: 25, PreviousPrice: 25, Volatility: 0.25, Description: "Industrial and precious metal with diverse applications"},
		{ID: "commodity-wheat", Name: "Wheat Futures", Ticker: "WHET", Category: CategoryCommodity, Price: 800, PreviousPrice: 800, Volatility: 0.45, Description: "Essential agricultural commodity influenced by global demand and weather"},
		{ID: "commodity-corn", Name: "Corn Futures", Ticker: "CORN", Category: CategoryCommodity, Price: 600, PreviousPrice: 600, Volatility: 0.4, Description: "Staple agricultural product used for food, feed, and fuel"},
		{ID: "commodity-copper", Name: "Copper", Ticker: "COPR", Category: CategoryCommodity, Price: 4.2, PreviousPrice: 4.2, Volatility: 0.5, Description: "Industrial metal considered a leading indicator of economic health"},
		{ID: "commodity-rare", Name: "Rare Earth Metals", Ticker: "RARE", Category: CategoryCommodity, Price: 250, PreviousPrice: 250, Volatility: 0.55, Description: "Critical materials for high-tech manufacturing and electronics"},

		// Cryptocurrencies
		{ID: "crypto-btc", Name: "Bitcoin", Ticker: "BTC", Category: CategoryCrypto, Price: 40000, PreviousPrice: 40000, Volatility: 0.8, Description: "The original cryptocurrency with the largest market cap"},
		{ID: "crypto-eth", Name: "Ethereum", Ticker: "ETH", Category: CategoryCrypto, Price: 2500, PreviousPrice: 2500, Volatility: 0.75, Description: "Smart contract platform powering decentralized applications"},
		{ID: "crypto-sol", Name: "Solana", Ticker: "SOL", Category: CategoryCrypto, Price: 100, PreviousPrice: 100, Volatility: 0.9, Description: "High-performance blockchain focusing on speed and low fees"},
		{ID: "crypto-stable", Name: "Stablecoin Index", Ticker: "STBL", Category: CategoryCrypto, Price: 1, PreviousPrice: 1, Volatility: 0.05, Description: "Basket of stablecoins pegged to the US dollar"},
	}
}

// tickerByAsset is derived from the universe so the two cannot drift.
var tickerByAsset = func() map[string]string {
	out := make(map[string]string)
	for _, asset := range StartingAssets() {
		out[asset.ID] = asset.Ticker
	}
	return out
}()

// TickerFor maps an asset id to its ticker symbol, empty when unknown.
// Ticker-keyed news templates resolve through this table.
func TickerFor(assetID string) string {
	return tickerByAsset[assetID]
}
