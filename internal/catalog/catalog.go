package catalog

// Platform is a static descriptor of a social platform a user can link
// to: display name, icon key and color classes for rendering, and a
// placeholder shown while the URL is being drafted.
type Platform struct {
	Name        string `json:"name" yaml:"name"`
	IconKey     string `json:"iconKey" yaml:"icon"`
	Color       string `json:"color" yaml:"color"`
	DarkColor   string `json:"darkColor" yaml:"darkColor"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
}

// Defaults returns the built-in platform catalog.
func Defaults() []Platform {
	return []Platform{
		{Name: "Facebook", IconKey: "FaFacebook", Color: "bg-blue-600", DarkColor: "bg-blue-700", Placeholder: "https://facebook.com/yourusername"},
		{Name: "GitHub", IconKey: "FaGithub", Color: "bg-gray-800", DarkColor: "bg-gray-900", Placeholder: "https://github.com/yourusername"},
		{Name: "Instagram", IconKey: "FaInstagram", Color: "bg-pink-600", DarkColor: "bg-pink-700", Placeholder: "https://instagram.com/yourusername"},
		{Name: "Portfolio", IconKey: "FaGlobe", Color: "bg-purple-600", DarkColor: "bg-purple-700", Placeholder: "https://yourportfolio.com"},
		{Name: "Twitter", IconKey: "FaTwitter", Color: "bg-blue-400", DarkColor: "bg-blue-500", Placeholder: "https://twitter.com/yourusername"},
		{Name: "YouTube", IconKey: "FaYoutube", Color: "bg-red-600", DarkColor: "bg-red-700", Placeholder: "https://youtube.com/@yourchannel"},
		{Name: "TikTok", IconKey: "FaTiktok", Color: "bg-black", DarkColor: "bg-gray-900", Placeholder: "https://tiktok.com/@yourusername"},
		{Name: "Discord", IconKey: "FaDiscord", Color: "bg-indigo-600", DarkColor: "bg-indigo-700", Placeholder: "https://discord.gg/yourserver"},
	}
}

// Merge overlays file-defined platforms on top of the defaults.
// An override with a known name replaces that entry in place (keeping
// catalog order); an unknown name is appended at the end.
func Merge(defaults, overrides []Platform) []Platform {
	merged := make([]Platform, len(defaults))
	copy(merged, defaults)

	pos := make(map[string]int, len(merged))
	for i, p := range merged {
		pos[p.Name] = i
	}

	for _, o := range overrides {
		if i, ok := pos[o.Name]; ok {
			merged[i] = o
			continue
		}
		pos[o.Name] = len(merged)
		merged = append(merged, o)
	}
	return merged
}
