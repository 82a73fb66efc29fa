package schema

import "github.com/lwmacct/251019-go-pkg-cfgtpl/pkg/merge"

// serviceFields 是 AGI 服务列表元素的字段。
var serviceFields = []string{"Endpoint", "Key"}

// Default 返回 IntelligenceHub appsettings 模板的内置 schema。
//
// 每次调用返回新值，调用方可以自由修改。
func Default() Schema {
	return Schema{
		Tokens: []Token{
			{Name: "Settings_DbConnectionString", Env: "Settings__DbConnectionString", Prompt: "Enter the database connection string", Required: true, Secret: true},
			{Name: "AuthSettings_Domain", Env: "AuthSettings__Domain", Prompt: "Enter the auth domain", Required: true},
			{Name: "AuthSettings_Audience", Env: "AuthSettings__Audience", Prompt: "Enter the auth audience", Required: true},
			{Name: "AuthSettings_BasicUsername", Env: "AuthSettings__BasicUsername", Prompt: "Enter the basic auth username"},
			{Name: "AuthSettings_BasicPassword", Env: "AuthSettings__BasicPassword", Prompt: "Enter the basic auth password", Secret: true},
			{Name: "AppInsightSettings_ConnectionString", Env: "AppInsightSettings__ConnectionString", Prompt: "Enter the Application Insights connection string", Required: true, Secret: true},
			{Name: "AGIClientSettings_AzureOpenAIServices", Env: "AGIClientSettings__AzureOpenAIServices", Prompt: "Azure OpenAI service", List: true, Fields: serviceFields, Required: true},
			{Name: "AGIClientSettings_OpenAIServices", Env: "AGIClientSettings__OpenAIServices", Prompt: "OpenAI service", List: true, Fields: serviceFields},
			{Name: "AGIClientSettings_AnthropicServices", Env: "AGIClientSettings__AnthropicServices", Prompt: "Anthropic service", List: true, Fields: serviceFields},
			{Name: "AGIClientSettings_SearchServiceCompletionServiceEndpoint", Env: "AGIClientSettings__SearchServiceCompletionServiceEndpoint", Prompt: "Enter the search service completion service endpoint"},
			{Name: "AGIClientSettings_SearchServiceCompletionServiceKey", Env: "AGIClientSettings__SearchServiceCompletionServiceKey", Prompt: "Enter the search service completion service key", Secret: true},
			{Name: "SearchServiceClientSettings_Endpoint", Env: "SearchServiceClientSettings__Endpoint", Prompt: "Enter the search service client endpoint"},
			{Name: "SearchServiceClientSettings_Key", Env: "SearchServiceClientSettings__Key", Prompt: "Enter the search service client key", Secret: true},
			{Name: "StripeSettings_ApiKey", Env: "StripeSettings__ApiKey", Prompt: "Enter the Stripe API key", Secret: true},
			{Name: "AzureAd_Instance", Env: "AzureAd__Instance", Prompt: "Enter the Azure AD instance"},
			{Name: "AzureAd_Domain", Env: "AzureAd__Domain", Prompt: "Enter the Azure AD domain"},
			{Name: "AzureAd_TenantId", Env: "AzureAd__TenantId", Prompt: "Enter the Azure AD tenant ID"},
			{Name: "AzureAd_ClientId", Env: "AzureAd__ClientId", Prompt: "Enter the Azure AD client ID"},
			{Name: "AzureAd_CallbackPath", Env: "AzureAd__CallbackPath", Prompt: "Enter the Azure AD callback path"},
			{Name: "AzureAd_Scopes", Env: "AzureAd__Scopes", Prompt: "Enter the Azure AD scopes"},
		},
		Preserve: []merge.Rule{
			{
				Section: "Settings",
				Keys: []string{
					"AGIClientMaxRetries",
					"AGIClientMaxJitter",
					"AGIClientInitialRetryDelay",
					"ToolClientMaxRetries",
					"ToolClientInitialRetryDelay",
					"MaxDbRetries",
					"MaxDbRetryDelay",
					"MaxCircuitBreakerFailures",
					"CircuitBreakerBreakDuration",
				},
			},
		},
		Readiness: Readiness{
			Environments: []string{"Production"},
		},
	}
}
