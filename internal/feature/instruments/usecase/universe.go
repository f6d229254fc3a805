package usecase

import "nifty_backend/internal/feature/instruments/domain/entity"

// nifty50Symbols is the watched universe: the NSE trading symbols of the
// Nifty 50 constituents. Membership changes a few times a year, so the
// list is maintained by hand rather than fetched.
var nifty50Symbols = []string{
	"RELIANCE", "TCS", "HDFCBANK", "ICICIBANK", "HINDUNILVR",
	"INFY", "ITC", "SBIN", "BHARTIARTL", "KOTAKBANK",
	"LT", "HCLTECH", "ASIANPAINT", "MARUTI", "AXISBANK",
	"BAJFINANCE", "TITAN", "SUNPHARMA", "ULTRACEMCO", "WIPRO",
	"NESTLEIND", "POWERGRID", "NTPC", "TATAMOTORS", "TECHM",
	"JSWSTEEL", "COALINDIA", "INDUSINDBK", "BAJAJFINSV", "ONGC",
	"M&M", "TATASTEEL", "CIPLA", "DRREDDY", "GRASIM",
	"BRITANNIA", "EICHERMOT", "BPCL", "DIVISLAB", "HEROMOTOCO",
	"ADANIENT", "APOLLOHOSP", "HINDALCO", "UPL", "BAJAJ-AUTO",
	"SBILIFE", "HDFCLIFE", "ADANIPORTS", "TATACONSUM", "LTIM",
}

// fallbackInstruments maps the largest constituents to their provider
// keys (ISIN-based). Used when the exchange dump cannot be fetched or
// yields no matches, so price lookups keep working in degraded mode.
var fallbackInstruments = []entity.Instrument{
	{Symbol: "RELIANCE", InstrumentKey: "NSE_EQ|INE002A01018"},
	{Symbol: "TCS", InstrumentKey: "NSE_EQ|INE467B01029"},
	{Symbol: "HDFCBANK", InstrumentKey: "NSE_EQ|INE040A01034"},
	{Symbol: "ICICIBANK", InstrumentKey: "NSE_EQ|INE090A01021"},
	{Symbol: "INFY", InstrumentKey: "NSE_EQ|INE009A01021"},
	{Symbol: "BHARTIARTL", InstrumentKey: "NSE_EQ|INE397D01024"},
	{Symbol: "KOTAKBANK", InstrumentKey: "NSE_EQ|INE237A01028"},
	{Symbol: "HINDUNILVR", InstrumentKey: "NSE_EQ|INE030A01027"},
	{Symbol: "SBIN", InstrumentKey: "NSE_EQ|INE062A01020"},
	{Symbol: "ITC", InstrumentKey: "NSE_EQ|INE154A01025"},
}
