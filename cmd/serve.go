package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/jsphweid/miditab/encode"
	"github.com/jsphweid/miditab/model"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves extraction over http",
	Long:  `Serves extraction over http: POST /extract with a file path and output type, get feature rows back as json.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// HandleExtract runs the encoder for one file and writes the rows as json.
// Exported so the handler can be exercised without a listener.
func HandleExtract(w http.ResponseWriter, r *http.Request) {
	var input model.ExtractRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "could not decode request body: "+err.Error())
		return
	}
	if input.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	outputType := model.ChordifyString
	if input.OutputType != "" {
		var err error
		outputType, err = model.ParseOutputType(input.OutputType)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if outputType.IsRoll() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("output type %v is not servable, use the extract command", outputType))
		return
	}

	transpose := true
	if input.Transpose != nil {
		transpose = *input.Transpose
	}

	enc := &encode.Encoder{
		Lookback:   input.Lookback,
		Transpose:  transpose,
		OutputType: outputType,
	}
	rows, err := enc.Extract(input.Path)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if rows == nil {
		rows = []model.FeatureRow{}
	}

	json.NewEncoder(w).Encode(model.ExtractResponse{
		File:    filepath.Base(input.Path),
		NumRows: len(rows),
		Rows:    rows,
	})
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/extract", HandleExtract).Methods("POST")
	handler := cors.Default().Handler(router)

	log.Info("listening", "addr", serveAddr)
	log.Fatal(http.ListenAndServe(serveAddr, handler))
}
