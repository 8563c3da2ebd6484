package dataprocessing

import (
	"encoding/xml"
)

// Wire schema shared by the four market-document roots. The platform uses
// dotted element names (in_Domain.mRID, price.amount) and the variants are
// supersets of each other, so one struct covers all of them; fields a
// variant does not carry simply stay zero.
//
// Every semantically repeating group (TimeSeries, Period, Point,
// MktPSRType, Reason) is declared as a slice. encoding/xml decodes one
// occurrence and many occurrences into a slice identically, so a
// single-element group never collapses into a scalar.
type marketDocumentXML struct {
	XMLName         xml.Name
	MRID            string          `xml:"mRID"`
	Type            string          `xml:"type"`
	CreatedDateTime string          `xml:"createdDateTime"`
	TimeSeries      []timeSeriesXML `xml:"TimeSeries"`
}

type timeSeriesXML struct {
	MRID               string        `xml:"mRID"`
	BusinessType       string        `xml:"businessType"`
	CurveType          string        `xml:"curveType"`
	InDomain           codedValueXML `xml:"in_Domain.mRID"`
	OutDomain          codedValueXML `xml:"out_Domain.mRID"`
	OutBiddingZone     codedValueXML `xml:"outBiddingZone_Domain.mRID"`
	CurrencyUnit       string        `xml:"currency_Unit.name"`
	PriceUnit          string        `xml:"price_Measure_Unit.name"`
	QuantityUnit       string        `xml:"quantity_Measure_Unit.name"`
	RegisteredResource codedValueXML `xml:"registeredResource.mRID"`
	PSRTypes           []psrTypeXML  `xml:"MktPSRType"`
	Reasons            []reasonXML   `xml:"Reason"`
	Periods            []periodXML   `xml:"Period"`
}

// codedValueXML models the platform's attribute-bearing leaf objects, for
// example <in_Domain.mRID codingScheme="A01">10YFI-1--------U</in_Domain.mRID>.
type codedValueXML struct {
	CodingScheme string `xml:"codingScheme,attr"`
	Value        string `xml:",chardata"`
}

type psrTypeXML struct {
	PSRType string `xml:"psrType"`
}

// reasonXML is decoded for completeness; reasons accompany unavailability
// documents and are not part of the row model.
type reasonXML struct {
	Code string `xml:"code"`
	Text string `xml:"text"`
}

type periodXML struct {
	TimeInterval timeIntervalXML `xml:"timeInterval"`
	Resolution   string          `xml:"resolution"`
	Points       []pointXML      `xml:"Point"`
}

type timeIntervalXML struct {
	Start string `xml:"start"`
	End   string `xml:"end"`
}

type pointXML struct {
	Position int      `xml:"position"`
	Quantity float64  `xml:"quantity"`
	Price    *float64 `xml:"price.amount"`
}
