package docast

import (
	"strconv"
	"strings"
)

// htmlEntities maps the supported character entity names to their text.
var htmlEntities = map[string]string{
	"copy": "©", "tm": "™", "trade": "™", "reg": "®", "lt": "<", "gt": ">",
	"amp": "&", "apos": "'", "quot": "\"", "lsquo": "‘", "rsquo": "’",
	"ldquo": "“", "rdquo": "”", "ndash": "–", "mdash": "—", "nbsp": " ",
	"laquo": "«", "raquo": "»", "sbquo": "‚", "bdquo": "„", "hellip": "…",
	"iexcl": "¡", "cent": "¢", "pound": "£", "curren": "¤", "yen": "¥",
	"brvbar": "¦", "sect": "§", "uml": "¨", "ordf": "ª", "not": "¬",
	"shy": "­", "macr": "¯", "deg": "°", "plusmn": "±", "sup2": "²",
	"sup3": "³", "acute": "´", "micro": "µ", "para": "¶", "middot": "·",
	"cedil": "¸", "sup1": "¹", "ordm": "º", "frac14": "¼", "frac12": "½",
	"frac34": "¾", "iquest": "¿", "times": "×", "divide": "÷",
	"Agrave": "À", "Aacute": "Á", "Acirc": "Â", "Atilde": "Ã", "Auml": "Ä",
	"Aring": "Å", "AElig": "Æ", "Ccedil": "Ç", "Egrave": "È", "Eacute": "É",
	"Ecirc": "Ê", "Euml": "Ë", "Igrave": "Ì", "Iacute": "Í", "Icirc": "Î",
	"Iuml": "Ï", "ETH": "Ð", "Ntilde": "Ñ", "Ograve": "Ò", "Oacute": "Ó",
	"Ocirc": "Ô", "Otilde": "Õ", "Ouml": "Ö", "Oslash": "Ø", "Ugrave": "Ù",
	"Uacute": "Ú", "Ucirc": "Û", "Uuml": "Ü", "Yacute": "Ý", "THORN": "Þ",
	"szlig": "ß", "agrave": "à", "aacute": "á", "acirc": "â", "atilde": "ã",
	"auml": "ä", "aring": "å", "aelig": "æ", "ccedil": "ç", "egrave": "è",
	"eacute": "é", "ecirc": "ê", "euml": "ë", "igrave": "ì", "iacute": "í",
	"icirc": "î", "iuml": "ï", "eth": "ð", "ntilde": "ñ", "ograve": "ò",
	"oacute": "ó", "ocirc": "ô", "otilde": "õ", "ouml": "ö", "oslash": "ø",
	"ugrave": "ù", "uacute": "ú", "ucirc": "û", "uuml": "ü", "yacute": "ý",
	"thorn": "þ", "yuml": "ÿ", "fnof": "ƒ",
	"Alpha": "Α", "Beta": "Β", "Gamma": "Γ", "Delta": "Δ", "Epsilon": "Ε",
	"Zeta": "Ζ", "Eta": "Η", "Theta": "Θ", "Iota": "Ι", "Kappa": "Κ",
	"Lambda": "Λ", "Mu": "Μ", "Nu": "Ν", "Xi": "Ξ", "Omicron": "Ο",
	"Pi": "Π", "Rho": "Ρ", "Sigma": "Σ", "Tau": "Τ", "Upsilon": "Υ",
	"Phi": "Φ", "Chi": "Χ", "Psi": "Ψ", "Omega": "Ω",
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"zeta": "ζ", "eta": "η", "theta": "θ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "omicron": "ο",
	"pi": "π", "rho": "ρ", "sigmaf": "ς", "sigma": "σ", "tau": "τ",
	"upsilon": "υ", "phi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
	"thetasym": "ϑ", "upsih": "ϒ", "piv": "ϖ",
	"bull": "•", "prime": "′", "Prime": "″", "oline": "‾", "frasl": "⁄",
	"weierp": "℘", "image": "ℑ", "real": "ℜ", "alefsym": "ℵ",
	"larr": "←", "uarr": "↑", "rarr": "→", "darr": "↓", "harr": "↔",
	"crarr": "↵", "lArr": "⇐", "uArr": "⇑", "rArr": "⇒", "dArr": "⇓",
	"hArr": "⇔", "forall": "∀", "part": "∂", "exist": "∃", "empty": "∅",
	"nabla": "∇", "isin": "∈", "notin": "∉", "ni": "∋", "prod": "∏",
	"sum": "∑", "minus": "−", "lowast": "∗", "radic": "√", "prop": "∝",
	"infin": "∞", "ang": "∠", "and": "∧", "or": "∨", "cap": "∩", "cup": "∪",
	"int": "∫", "there4": "∴", "sim": "∼", "cong": "≅", "asymp": "≈",
	"ne": "≠", "equiv": "≡", "le": "≤", "ge": "≥", "sub": "⊂", "sup": "⊃",
	"nsub": "⊄", "sube": "⊆", "supe": "⊇", "oplus": "⊕", "otimes": "⊗",
	"perp": "⊥", "sdot": "⋅", "lceil": "⌈", "rceil": "⌉", "lfloor": "⌊",
	"rfloor": "⌋", "lang": "〈", "rang": "〉", "loz": "◊", "spades": "♠",
	"clubs": "♣", "hearts": "♥", "diams": "♦", "OElig": "Œ", "oelig": "œ",
	"Scaron": "Š", "scaron": "š", "Yuml": "Ÿ", "circ": "ˆ", "tilde": "˜",
	"ensp": " ", "emsp": " ", "thinsp": " ", "zwnj": "‌",
	"zwj": "‍", "lrm": "‎", "rlm": "‏", "dagger": "†",
	"Dagger": "‡", "permil": "‰", "lsaquo": "‹", "rsaquo": "›", "euro": "€",
	"dollar": "$", "percnt": "%", "num": "#", "quest": "?",
}

// LookupSymbol decodes a character entity written as &name; or &#N; or
// &#xN;. It reports false for unsupported entities.
func LookupSymbol(entity string) (string, bool) {
	if !strings.HasPrefix(entity, "&") || !strings.HasSuffix(entity, ";") || len(entity) < 3 {
		return "", false
	}
	name := entity[1 : len(entity)-1]

	if strings.HasPrefix(name, "#") {
		num := name[1:]
		base := 10
		if strings.HasPrefix(num, "x") || strings.HasPrefix(num, "X") {
			num = num[1:]
			base = 16
		}
		code, err := strconv.ParseUint(num, base, 32)
		if err != nil || code == 0 || code > 0x10FFFF {
			return "", false
		}
		return string(rune(code)), true
	}

	text, ok := htmlEntities[name]
	return text, ok
}
