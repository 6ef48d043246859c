// Package vocab defines the country-data ontology vocabulary shared by
// every component: class IRIs, property IRIs, flow literals and the XSD
// datatypes used for typed values. The vocabulary is a contract, not logic;
// ingestion writes these terms and the aggregation engine reads them back.
package vocab

// Namespace is the base IRI prefix for all country-data terms.
const Namespace = "http://example.org/country-data#"

// OntologyIRI identifies the ontology itself.
const OntologyIRI = "http://example.org/country-data"

// Class IRIs define the entity and measurement types present in the graph.
const (
	// ClassEntity is the base class for all entities.
	ClassEntity = Namespace + "Entity"

	// ClassCountry represents a sovereign state.
	ClassCountry = Namespace + "Country"

	// ClassOrganization represents an international organization.
	ClassOrganization = Namespace + "Organization"

	// ClassWorldAggregate is the special W00 entity representing
	// global trade aggregates. Never enumerated as a country.
	ClassWorldAggregate = Namespace + "WorldAggregate"

	// ClassMeasurement is the base class for observed facts.
	ClassMeasurement = Namespace + "Measurement"

	// ClassEconomicMeasurement covers economic indicators like GDP.
	ClassEconomicMeasurement = Namespace + "EconomicMeasurement"

	// ClassSocialMeasurement covers social indicators like HDI.
	ClassSocialMeasurement = Namespace + "SocialMeasurement"

	// ClassDemographicMeasurement covers indicators like population.
	ClassDemographicMeasurement = Namespace + "DemographicMeasurement"

	// ClassTradeMeasurement is the base class for bilateral trade flows.
	ClassTradeMeasurement = Namespace + "TradeMeasurement"

	// ClassGoodsTrade is trade in physical goods (UN Comtrade type code C).
	ClassGoodsTrade = Namespace + "GoodsTrade"

	// ClassServicesTrade is trade in services (UN Comtrade type code S).
	ClassServicesTrade = Namespace + "ServicesTrade"

	// ClassTradeAggregate is a computed per-(country, year) summary node.
	// Written by the aggregation engine, never by ingestion.
	ClassTradeAggregate = Namespace + "TradeAggregate"
)

// Entity property IRIs.
const (
	// PropName is the display name of an entity.
	PropName = Namespace + "name"

	// PropISOCode is the unique ISO 3166 alpha-3 code of a country.
	PropISOCode = Namespace + "isoCode"

	// PropUNCode is the numeric UN M49 code of a country.
	PropUNCode = Namespace + "unCode"

	// PropIsMemberOf links a country to an organization.
	PropIsMemberOf = Namespace + "isMemberOf"
)

// Measurement property IRIs.
const (
	// PropYear is the calendar year a measurement or aggregate covers.
	// Object is an xsd:integer literal.
	PropYear = Namespace + "year"

	// PropTradeValue is the observed trade value of a measurement.
	// Object is an xsd:decimal literal.
	PropTradeValue = Namespace + "tradeValue"

	// PropFlowType is the direction of a trade measurement.
	// Values: FlowExport, FlowImport.
	PropFlowType = Namespace + "flowType"

	// PropTradeType is the raw UN Comtrade type code ("C" or "S").
	PropTradeType = Namespace + "tradeType"

	// PropHasTradeMeasurement links a country to one of its trade
	// measurement nodes.
	PropHasTradeMeasurement = Namespace + "hasTradeMeasurement"

	// PropHasPartnerCountry links a trade measurement to the counterpart
	// entity of the bilateral record.
	PropHasPartnerCountry = Namespace + "hasPartnerCountry"
)

// Aggregate property IRIs, all with xsd:decimal objects.
const (
	// PropHasTradeAggregate links a country to a computed aggregate node.
	PropHasTradeAggregate = Namespace + "hasTradeAggregate"

	PropTotalExportValue    = Namespace + "totalExportValue"
	PropGoodsExportValue    = Namespace + "goodsExportValue"
	PropServicesExportValue = Namespace + "servicesExportValue"

	PropTotalImportValue    = Namespace + "totalImportValue"
	PropGoodsImportValue    = Namespace + "goodsImportValue"
	PropServicesImportValue = Namespace + "servicesImportValue"

	PropTotalTradeBalance    = Namespace + "totalTradeBalance"
	PropGoodsTradeBalance    = Namespace + "goodsTradeBalance"
	PropServicesTradeBalance = Namespace + "servicesTradeBalance"
)

// Flow literal values stored under PropFlowType.
const (
	FlowExport = "Export"
	FlowImport = "Import"
)

// RDFType is the rdf:type predicate IRI.
const RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// XSD datatype IRIs for typed literals.
const (
	XSDString  = "http://www.w3.org/2001/XMLSchema#string"
	XSDInteger = "http://www.w3.org/2001/XMLSchema#integer"
	XSDDecimal = "http://www.w3.org/2001/XMLSchema#decimal"
)
