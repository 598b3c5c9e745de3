package epg

import "encoding/xml"

// XMLTV timestamp layout, e.g. "20260101180000 -0300".
const timeLayout = "20060102150405 -0700"

const (
	generatorInfoName = "br-epg-generator-v2"
	generatorInfoURL  = "https://github.com/gleibsonms/epg"
)

// TV is the root <tv> element of an XMLTV document.
type TV struct {
	XMLName           xml.Name    `xml:"tv"`
	GeneratorInfoName string      `xml:"generator-info-name,attr,omitempty"`
	GeneratorInfoURL  string      `xml:"generator-info-url,attr,omitempty"`
	Channels          []Channel   `xml:"channel"`
	Programmes        []Programme `xml:"programme"`
}

// Channel is one <channel> element.
type Channel struct {
	ID          string `xml:"id,attr"`
	DisplayName string `xml:"display-name"`
	Icon        *Icon  `xml:"icon,omitempty"`
}

type Icon struct {
	Src string `xml:"src,attr"`
}

// Programme is one <programme> element.
type Programme struct {
	Start   string `xml:"start,attr"`
	Stop    string `xml:"stop,attr"`
	Channel string `xml:"channel,attr"`
	Title   string `xml:"title"`
	Desc    string `xml:"desc,omitempty"`
}

// Marshal renders the document as indented XML behind the standard header.
func (t *TV) Marshal() ([]byte, error) {
	data, err := xml.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}
