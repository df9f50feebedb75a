package constant

type ContextKey string

// ActorIDKey carries the authenticated staff subject through request context.
const ActorIDKey ContextKey = "actor_id"
