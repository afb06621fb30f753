// Revsent is a CLI for sampling product reviews and classifying their
// sentiment and noun density with the Hugging Face Inference API.
//
// Results are cached per review and analysis kind for the lifetime of the
// process, so repeated requests never call the API twice.
//
// Usage:
//
//	revsent sample                      # print a random review
//	revsent show 12                     # print review #12
//	revsent analyze                     # classify a random review
//	revsent analyze --id 12 --kind nouns --format json
//	revsent serve --addr :8080          # JSON API over the same session
//	revsent models doctor               # check the models respond
//
// The API token is read from HF_TOKEN (or HUGGINGFACEHUB_API_TOKEN), a .env
// file in the working directory, or --token.
package main
