// Copyright 2026 The GsePod Authors
// SPDX-License-Identifier: Apache-2.0

// Package istat holds the static ISTAT code tables used to translate the
// region and province codes carried by GSE municipality records into
// canonical Italian names. The tables are pure data, populated at link time
// and never mutated, so they are safe to share across concurrent callers.
package istat

import "fmt"

// Regions maps ISTAT region codes (COD_REG) to region names.
var Regions = map[int]string{
	1:  "Piemonte",
	2:  "Valle d'Aosta",
	3:  "Lombardia",
	4:  "Trentino-Alto Adige",
	5:  "Veneto",
	6:  "Friuli-Venezia Giulia",
	7:  "Liguria",
	8:  "Emilia-Romagna",
	9:  "Toscana",
	10: "Umbria",
	11: "Marche",
	12: "Lazio",
	13: "Abruzzo",
	14: "Molise",
	15: "Campania",
	16: "Puglia",
	17: "Basilicata",
	18: "Calabria",
	19: "Sicilia",
	20: "Sardegna",
}

// Provinces maps ISTAT province codes (COD_PROV) to province names.
var Provinces = map[int]string{
	1:   "Torino",
	2:   "Vercelli",
	3:   "Novara",
	4:   "Cuneo",
	5:   "Asti",
	6:   "Alessandria",
	7:   "Valle d'Aosta/Vallée d'Aoste",
	8:   "Imperia",
	9:   "Savona",
	10:  "Genova",
	11:  "La Spezia",
	12:  "Varese",
	13:  "Como",
	14:  "Sondrio",
	15:  "Milano",
	16:  "Bergamo",
	17:  "Brescia",
	18:  "Pavia",
	19:  "Cremona",
	20:  "Mantova",
	21:  "Bolzano/Bozen",
	22:  "Trento",
	23:  "Verona",
	24:  "Vicenza",
	25:  "Belluno",
	26:  "Treviso",
	27:  "Venezia",
	28:  "Padova",
	29:  "Rovigo",
	30:  "Udine",
	31:  "Gorizia",
	32:  "Trieste",
	33:  "Piacenza",
	34:  "Parma",
	35:  "Reggio nell'Emilia",
	36:  "Modena",
	37:  "Bologna",
	38:  "Ferrara",
	39:  "Ravenna",
	40:  "Forlì-Cesena",
	41:  "Pesaro e Urbino",
	42:  "Ancona",
	43:  "Macerata",
	44:  "Ascoli Piceno",
	45:  "Massa-Carrara",
	46:  "Lucca",
	47:  "Pistoia",
	48:  "Firenze",
	49:  "Livorno",
	50:  "Pisa",
	51:  "Arezzo",
	52:  "Siena",
	53:  "Grosseto",
	54:  "Perugia",
	55:  "Terni",
	56:  "Viterbo",
	57:  "Rieti",
	58:  "Roma",
	59:  "Latina",
	60:  "Frosinone",
	61:  "Caserta",
	62:  "Benevento",
	63:  "Napoli",
	64:  "Avellino",
	65:  "Salerno",
	66:  "L'Aquila",
	67:  "Teramo",
	68:  "Pescara",
	69:  "Chieti",
	70:  "Campobasso",
	71:  "Foggia",
	72:  "Bari",
	73:  "Taranto",
	74:  "Brindisi",
	75:  "Lecce",
	76:  "Potenza",
	77:  "Matera",
	78:  "Cosenza",
	79:  "Catanzaro",
	80:  "Reggio Calabria",
	81:  "Trapani",
	82:  "Palermo",
	83:  "Messina",
	84:  "Agrigento",
	85:  "Caltanissetta",
	86:  "Enna",
	87:  "Catania",
	88:  "Ragusa",
	89:  "Siracusa",
	90:  "Sassari",
	91:  "Nuoro",
	92:  "Cagliari",
	93:  "Pordenone",
	94:  "Isernia",
	95:  "Oristano",
	96:  "Biella",
	97:  "Lecco",
	98:  "Lodi",
	99:  "Rimini",
	100: "Prato",
	101: "Crotone",
	102: "Vibo Valentia",
	103: "Verbano-Cusio-Ossola",
	108: "Monza e della Brianza",
	109: "Fermo",
	110: "Barletta-Andria-Trani",
	111: "Sud Sardegna",
}

// unknownName is the placeholder for codes missing from the tables. A code
// the tables don't know is a data-quality condition of the upstream record,
// not a reason to fail a resolution.
func unknownName(code int) string {
	return fmt.Sprintf("Unknown (code %d)", code)
}

// RegionName translates a region code, falling back to a placeholder for
// unmapped codes.
func RegionName(code int) string {
	if name, ok := Regions[code]; ok {
		return name
	}

	return unknownName(code)
}

// ProvinceName translates a province code, falling back to a placeholder for
// unmapped codes.
func ProvinceName(code int) string {
	if name, ok := Provinces[code]; ok {
		return name
	}

	return unknownName(code)
}

// KnownRegion reports whether the region code is present in the table.
func KnownRegion(code int) bool {
	_, ok := Regions[code]

	return ok
}

// KnownProvince reports whether the province code is present in the table.
func KnownProvince(code int) bool {
	_, ok := Provinces[code]

	return ok
}
