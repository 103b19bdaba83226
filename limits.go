package mixinruntime

// MaxMixins bounds the mixin identifier space. Identifiers at or above
// this value are treated as invalid by bounds-checked accessors rather
// than causing errors.
const MaxMixins = 512

// MaxFeatures bounds the feature identifier space.
const MaxFeatures = 1024

// Handle references one allocation cell within a mixin store.
// Handle 0 is reserved and always invalid.
type Handle uint32
