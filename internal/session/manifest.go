package session

import (
	"encoding/xml"
	"fmt"
)

const themeColor = "#2c5aa0"

// ManifestIcon is one entry of the web app manifest icon list.
type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

type Shortcut struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	URL       string `json:"url"`
}

// Manifest is served at /manifest.json so the dashboard can be installed.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Orientation     string         `json:"orientation"`
	Icons           []ManifestIcon `json:"icons"`
	Shortcuts       []Shortcut     `json:"shortcuts"`
	Categories      []string       `json:"categories"`
}

var iconSizes = []int{72, 96, 128, 144, 152, 192, 384, 512}

// NewManifest describes the app for shopName. Installs start with
// ?source=pwa so the server can hide the install chrome.
func NewManifest(shopName string) Manifest {
	m := Manifest{
		Name:            shopName + " Manager",
		ShortName:       shopName,
		Description:     "Point of sale and daily sales dashboard for " + shopName,
		StartURL:        "/?source=pwa",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      themeColor,
		Orientation:     "portrait-primary",
		Shortcuts: []Shortcut{
			{Name: "Add Sale", ShortName: "Sale", URL: "/?tab=sales"},
			{Name: "Today's Sales", ShortName: "Today", URL: "/?tab=today"},
			{Name: "Dashboard", ShortName: "Stats", URL: "/?tab=dashboard"},
		},
		Categories: []string{"business", "productivity", "finance"},
	}
	for _, size := range iconSizes {
		icon := ManifestIcon{
			Src:   "/static/icons/icon.svg",
			Sizes: fmt.Sprintf("%dx%d", size, size),
			Type:  "image/svg+xml",
		}
		if size == 192 || size == 512 {
			icon.Purpose = "any maskable"
		}
		m.Icons = append(m.Icons, icon)
	}
	return m
}

// BrowserConfig is the Windows tile description served at /browserconfig.xml.
type BrowserConfig struct {
	XMLName xml.Name `xml:"browserconfig"`
	Tile    struct {
		Square150 TileLogo `xml:"square150x150logo"`
		Square310 TileLogo `xml:"square310x310logo"`
		Color     string   `xml:"TileColor"`
	} `xml:"msapplication>tile"`
}

type TileLogo struct {
	Src string `xml:"src,attr"`
}

func NewBrowserConfig() BrowserConfig {
	var b BrowserConfig
	b.Tile.Square150 = TileLogo{Src: "/static/icons/icon.svg"}
	b.Tile.Square310 = TileLogo{Src: "/static/icons/icon.svg"}
	b.Tile.Color = themeColor
	return b
}
