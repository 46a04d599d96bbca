package models

// FieldKeys is the declared order of the customer detail fields. The renderer
// walks this order; Customer.Fields and FormState.CustomerInputs both carry
// exactly this key set.
var FieldKeys = []string{
	"name",
	"projectName",
	"email",
	"walletAddress",
	"photo",
	"nationality",
	"comment",
}

const defaultBackground = "https://utfs.io/f/PKy8oE1GN2J3t4MUvdkvpN1sulgB5tndmrzYhToROK9e3EVa"

// DefaultFormState returns a fully populated configuration tree for a brand
// new form. Every section is present; the engine relies on that.
func DefaultFormState() FormState {
	background := defaultBackground

	return FormState{
		Form: Form{
			ID:    "",
			Title: "My new form",
			Ad:    false,
		},
		Design: Design{
			Logo:            ImageAsset{},
			Background:      ImageAsset{Preview: &background},
			PrimaryColor:    "#6D28D9",
			BackgroundColor: "#ffffff",
			Font:            "Roboto Mono",
			Gradient: Gradient{
				From: "#9333EA",
				To:   "#1E3A8A",
			},
		},
		Welcome: Welcome{
			Title:      "Share a testimonial!",
			Subtitle:   "Do you love using our product? We'd love to hear about it!",
			Prompts:    "- Share your experience with a quick video testimonial\n- Recording a video? Don't forget to smile 😊",
			ButtonText: "Record a video",
			ShowButton: false,
		},
		Response: Response{
			Title:         "Record a video feedback",
			Prompts:       "- What do you like about Mont?\n- Would you recommend Mont to a friend?",
			EnableRating:  true,
			RecordingTime: "00:00",
		},
		Customer: Customer{
			Fields: map[string]FieldRule{
				"name":          {Enabled: true, Required: true},
				"projectName":   {Enabled: true, Required: false},
				"email":         {Enabled: true, Required: true},
				"walletAddress": {Enabled: true, Required: false},
				"photo":         {Enabled: true, Required: false},
				"nationality":   {Enabled: true, Required: false},
				"comment":       {Enabled: true, Required: false},
			},
		},
		CustomerInputs: map[string]string{
			"name":          "",
			"projectName":   "",
			"email":         "",
			"walletAddress": "",
			"photo":         "",
			"nationality":   "",
			"comment":       "",
		},
		Thanks: Thanks{
			Title:   "Thanks for leaving us feedback 🙏",
			Message: "Thank you so much for your support! We appreciate your support and participation in making our hackathon better!",
		},
		SocialHandle: SocialHandle{
			Profile: SocialProfile{
				Name:      "Mont Protocol",
				Handle:    "MontProtocol",
				Following: 420,
				Followers: 15200,
				Bio:       "Building the future of institutional DeFi lending | Security-first approach | Cross-chain enabled",
			},
			Posts: []SocialPost{
				{
					ID:        "1",
					Content:   "✨ Masterpiece alert! Ready to shine? Click the sparkly 'Get Form' button and let's create! ✨ #ContentCreation #Engagement",
					VideoURL:  "/placeholder-video-1.mp4",
					Likes:     1200,
					Retweets:  450,
					Replies:   89,
					Timestamp: "2h",
				},
			},
		},
	}
}

// Normalize fills any section that is missing or half-empty back to its
// default shape. Records written by older schema versions lack some sections;
// after Normalize every section invariant holds again.
func Normalize(s *FormState) {
	def := DefaultFormState()

	if s.Customer.Fields == nil {
		s.Customer.Fields = def.Customer.Fields
	}
	if s.CustomerInputs == nil {
		s.CustomerInputs = def.CustomerInputs
	}

	SyncInputKeys(s)

	if s.Design.PrimaryColor == "" && s.Design.Font == "" {
		s.Design = def.Design
	}
	if s.Welcome == (Welcome{}) {
		s.Welcome = def.Welcome
	}
	if s.Response.Title == "" && s.Response.RecordingTime == "" {
		s.Response = def.Response
	}
	if s.Thanks == (Thanks{}) {
		s.Thanks = def.Thanks
	}
	if s.SocialHandle.Profile == (SocialProfile{}) && s.SocialHandle.Posts == nil {
		s.SocialHandle = def.SocialHandle
	}
}

// SyncInputKeys keeps customerInputs on the same key set as customer.fields:
// rules without an input slot get an empty one, inputs without a rule are
// dropped.
func SyncInputKeys(s *FormState) {
	if s.CustomerInputs == nil {
		s.CustomerInputs = map[string]string{}
	}
	for key := range s.Customer.Fields {
		if _, ok := s.CustomerInputs[key]; !ok {
			s.CustomerInputs[key] = ""
		}
	}
	for key := range s.CustomerInputs {
		if _, ok := s.Customer.Fields[key]; !ok {
			delete(s.CustomerInputs, key)
		}
	}
}
