package catalog

// defaultProfile is the built-in shell content.
var defaultProfile = Profile{
	Name:        "Somto Great",
	Headline:    "Automation Architect",
	Intro:       "Specializing in AI Agents, Custom Automation (Make/n8n/zapier), and high-performance Mobile App Development.",
	Mission:     "My mission is simple: to turn your vision into a digital experience that drives results.",
	Portrait:    "/somto-portfolio/somto.jpg",
	ClientBadge: "50+ Global Clients",
	About:       "Architecting high-performance digital ecosystems. Engineering precision in every line of code, every automated trigger, and every pixel.",
	Email:       "somtogreat69@gmail.com",
	Phone:       "+234 7077336381",
	Location:    "Gwarimpa FCT-Abuja",
	Region:      "Federal Capital Territory, Nigeria",
	Links: []Link{
		{Label: "LinkedIn", URL: "https://www.linkedin.com/in/great77"},
		{Label: "GitHub", URL: "https://github.com/somtogreat69"},
	},
	Copyright: "© 2024 Somto Great. Code by Precision.",
}

var defaultCaseStudies = []CaseStudy{
	{
		ID:        "lead-qual",
		Title:     "Automated AI Lead Qualification & Routing",
		Role:      "Automation Architect",
		VideoURL:  "https://www.loom.com/share/2d71b84e8eed483a9a48af3b07b2b48b",
		Tools:     []string{"Make.com", "Google Sheets", "OpenAI (API)", "Slack"},
		Challenge: "Sales teams waste time on unqualified leads; manual sorting causes slow response times.",
		Solution:  `Built a Make.com scenario that intercepts leads, uses GPT-4 to analyze sentiment/intent, and routes "High Intent" leads to Slack immediately while sending low intent leads to a nurture sheet.`,
		Workflow: []WorkflowStep{
			{Label: "Trigger", Description: `Google Form/Typeform "Lead Capture" intercepts new submissions in real-time.`},
			{Label: "Enrichment", Description: "OpenAI node analyzes message sentiment, intent, and lead potential using custom prompting."},
			{Label: "Routing", Description: `Router Node filters by intent score: If "High", triggers urgent Slack notification to #sales-urgent. If "Low/Medium", appends to Google Sheet nurture list.`},
		},
		Color: ColorBlue,
	},
	{
		ID:        "onboarding",
		Title:     "Touchless Client Onboarding",
		Role:      "Integration Specialist",
		VideoURL:  "https://www.loom.com/share/e85a662893584c08b17433a0d2e02af4",
		Tools:     []string{"Zapier", "Stripe", "Google Drive", "Gmail", "Trello/Asana"},
		Challenge: "Manual onboarding is error-prone and slow, taking approximately 45 minutes per client.",
		Solution:  "A multi-step Zapier workflow triggered by payment that automates contracts, folders, and project boards. Reduced human intervention time to 30 seconds.",
		Workflow: []WorkflowStep{
			{Label: "Trigger", Description: `Stripe "New Payment" event identifies successful checkout.`},
			{Label: "Action 1", Description: `Automatically create a dedicated Google Drive Folder named "Client - [Name]".`},
			{Label: "Action 2", Description: "Generate a customized Service Agreement from a Google Doc Template using client metadata."},
			{Label: "Action 3", Description: "Create a new Trello/Asana card with a predefined onboarding checklist."},
			{Label: "Action 4", Description: `Send a Gmail draft or email with the contract link and "Welcome" instructions.`},
		},
		Color: ColorGreen,
	},
	{
		ID:        "content-engine",
		Title:     "End-to-End Content Repurposing Engine",
		Role:      "AI Engineer",
		Tools:     []string{"n8n (Self-hosted)", "YouTube API", "OpenAI (Whisper/GPT)", "Notion", "WordPress"},
		Challenge: "Creating cross-platform content (blogging from video) is resource-intensive and manual.",
		Solution:  "Self-hosted n8n workflow that monitors media channels, transcribes audio, and uses LLMs to write SEO-optimized blog posts.",
		Workflow: []WorkflowStep{
			{Label: "Trigger", Description: "Periodic check of YouTube channel via API for new video uploads."},
			{Label: "Transcription", Description: "Whisper API processes the audio stream to generate a high-accuracy transcript."},
			{Label: "Processing", Description: `"Split In Batches" node handles long transcripts, sending segments to OpenAI for summarization and blog structure creation.`},
			{Label: "Drafting", Description: `Automatically pushes the generated, SEO-optimized post to WordPress as a "Draft" for final review.`},
		},
		Color: ColorBlue,
	},
	{
		ID:        "crm-erp",
		Title:     "Fully Automated Order Management & CRM Ecosystem",
		Role:      "Automation Architect",
		VideoURL:  "https://www.loom.com/share/d48b87c7f5ef4908873bbb6e9ac3b86f",
		Tools:     []string{"Make.com", "Airtable (Interface & Database)", "Jotform", "Gmail"},
		Challenge: "Managing orders manually leads to data duplication, missed payment verifications, and disjointed customer communication.",
		Solution:  "Engineered a full-stack low-code ERP that handles customer deduplication, enforces conditional logistics logic, and automates financial reconciliation and reporting.",
		Workflow: []WorkflowStep{
			{Label: "Smart Input", Description: `Jotform with UI logic dynamically hides/shows delivery address fields based on "Pickup" vs. "Delivery" selection.`},
			{Label: "CRM Routing", Description: "Make.com queries Airtable: If New Customer, creates Record + Links Order. If Existing, links Order to existing Record to prevent duplication."},
			{Label: "Status Logic", Description: `Router checks Payment Status. If "No" → Status set to Pending (Sends Bank Details). If "Yes" → Status set to Processing.`},
			{Label: "Communication Loop", Description: `Checks "Email Opt-in". Sends "Welcome" to new users immediately, waits 5 minutes, then sends "Order Confirmation".`},
			{Label: "Admin Ops", Description: "Scheduled automation runs daily at 9:00 AM → Aggregates Airtable data -> Sends Summary Report (Total Orders, Status Breakdown) to management."},
		},
		Color: ColorGreen,
	},
	{
		ID:        "slack-bot",
		Title:     "Slack Code Explanation Bot (Internal Tool)",
		Role:      "AI Tool Developer",
		Tools:     []string{"Slack API (Bolt.js)", "OpenAI API (GPT-4)", "AWS Lambda/Replit", "Webhooks"},
		Challenge: "Junior developers frequently get stuck on complex legacy code, causing bottlenecks and wasting senior mentors' time.",
		Solution:  `Built an interactive Slack bot that acts as an "On-Demand Mentor." It listens for mentions in engineering channels, analyzes code snippets, and returns educational breakdowns.`,
		Workflow: []WorkflowStep{
			{Label: "Event Listener", Description: "Slack Events API listens for app_mention events (@CodeBot) in specified channels."},
			{Label: "Extraction", Description: "Regex parser isolates the code block or GitHub URL from the user's message payload."},
			{Label: "AI Processing", Description: `Payload sent to OpenAI with system prompt: "Act as a Senior Engineer. Explain this logic simply and highlight potential bugs."`},
			{Label: "Delivery", Description: "Formats the AI response into Slack Block Kit (Markdown) and posts it as a threaded reply."},
		},
		Color: ColorBlue,
	},
}

var defaultApps = []AppProfile{
	{
		ID:       "2easy",
		Name:     "2Easy",
		Tagline:  "Fitness Made Simple",
		Overview: "A streamlined app to remove friction from workout tracking and scheduling.",
		Features: []string{
			"Workout Tracking: Input sets/reps without complex menus. Auto-highlight PRs.",
			"Gym Scheduling: Real-time calendar & one-tap booking.",
			"Membership: Digital QR ID for access & subscription management.",
		},
		TechStack: []string{"Flutter", "Firebase", "MongoDB", "Riverpod", "OAuth 2.0"},
		Image:     "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?auto=format&fit=crop&q=80&w=600&h=1200",
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultProfile, defaultCaseStudies, defaultApps)
	if err != nil {
		panic("catalog: built-in content is invalid: " + err.Error())
	}
	return c
}

// Open returns the catalog stored at path, or the built-in catalog when
// path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
