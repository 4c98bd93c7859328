package config

const ModelKey = "model"
